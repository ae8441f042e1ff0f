// Scanner captures or ingests one product photo, normalizes it to PNG and
// asks the relay whether the product is vegan.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/joho/godotenv"

	"vegan-analyze-service/capture"
	"vegan-analyze-service/client"
)

func main() {
	server := flag.String("server", "http://127.0.0.1:8080", "relay base URL")
	file := flag.String("file", "", "analyze an image file instead of the camera")
	device := flag.Int("device", 0, "camera device index (rear camera usually enumerates last)")
	timeout := flag.Duration("timeout", 90*time.Second, "relay request timeout")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debug(".env file not found, using system environment variables")
	}

	png, err := acquire(*file, *device)
	if err != nil {
		var cerr *capture.Error
		if errors.As(err, &cerr) {
			fmt.Fprintln(os.Stderr, cerr.UserMessage())
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}

	verdict, err := client.New(*server, *timeout).Analyze(png)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(verdict)
}

// acquire produces one normalized PNG, either from a file or from a single
// camera capture. The camera handle is released on every exit path.
func acquire(file string, device int) ([]byte, error) {
	if file != "" {
		return capture.IngestFile(file)
	}

	session := capture.NewSession(capture.NewWebcamDevice())
	defer session.Close()

	constraints := capture.HD
	constraints.DeviceID = device
	if err := session.Open(constraints); err != nil {
		return nil, err
	}
	return session.Capture()
}
