package capture

import (
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"
)

// WebcamDevice is the gocv-backed Device used on real hardware. Failure
// classification happens against the V4L device node, not against OpenCV
// error strings.
type WebcamDevice struct {
	vc *gocv.VideoCapture
}

// NewWebcamDevice creates an unopened webcam device.
func NewWebcamDevice() *WebcamDevice {
	return &WebcamDevice{}
}

// Open claims the video device described by the constraints and requests
// the target resolution, best effort.
func (d *WebcamDevice) Open(c Constraints) error {
	if err := classifyNode(c.DeviceID); err != nil {
		return err
	}

	vc, err := gocv.OpenVideoCapture(c.DeviceID)
	if err != nil {
		// The node exists and is readable, so another consumer holds it.
		return NewError(DeviceBusy, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return NewError(DeviceUnavailable, nil)
	}

	if c.Width > 0 {
		vc.Set(gocv.VideoCaptureFrameWidth, float64(c.Width))
	}
	if c.Height > 0 {
		vc.Set(gocv.VideoCaptureFrameHeight, float64(c.Height))
	}

	d.vc = vc
	return nil
}

// Grab reads the current frame at its native resolution.
func (d *WebcamDevice) Grab() (image.Image, error) {
	if d.vc == nil {
		return nil, NewError(CaptureFailed, nil)
	}

	mat := gocv.NewMat()
	defer mat.Close()

	if ok := d.vc.Read(&mat); !ok || mat.Empty() {
		return nil, NewError(CaptureFailed, fmt.Errorf("device returned no frame"))
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, NewError(ContextUnavailable, err)
	}
	return img, nil
}

// Close releases the device. Safe to call when not open.
func (d *WebcamDevice) Close() error {
	if d.vc == nil {
		return nil
	}
	err := d.vc.Close()
	d.vc = nil
	return err
}

// classifyNode checks the V4L device node before OpenCV touches it, mapping
// OS-level conditions to the closed acquisition error set.
func classifyNode(deviceID int) error {
	node := fmt.Sprintf("/dev/video%d", deviceID)

	if _, err := os.Stat(node); os.IsNotExist(err) {
		return NewError(DeviceNotFound, err)
	}

	f, err := os.OpenFile(node, os.O_RDWR, 0)
	if err != nil {
		if os.IsPermission(err) {
			return NewError(PermissionDenied, err)
		}
		return NewError(DeviceUnavailable, err)
	}
	f.Close()
	return nil
}
