// Package llm abstracts the hosted vision-language model providers.
package llm

// Prompt is the fixed instruction sent with every analysis request. Its
// four requirements are contractual: judge veganism from visible
// ingredients, certifications and labels; answer with an explicit yes/no
// plus a brief justification; ask for a retake when the photo is
// unreadable; and answer in German.
const Prompt = `Du bist ein Experte für vegane Ernährung. Sieh dir das Foto des Produkts an und beurteile anhand der sichtbaren Zutatenliste, Siegel und Kennzeichnungen (z. B. V-Label, Veganblume), ob das Produkt vegan ist.

Antworte auf Deutsch mit einem klaren "Ja" oder "Nein" und einer kurzen Begründung. Wenn das Foto unleserlich ist oder die Zutaten nicht zu erkennen sind, bitte den Nutzer, das Foto neu aufzunehmen.`

// Client abstracts a vision-language model provider used by the relay.
// Implementations must be safe for concurrent use.
type Client interface {
	// AnalyzeImage sends one image with the fixed prompt and returns the
	// model's raw text verdict.
	AnalyzeImage(mimeType string, imageData []byte) (string, error)
	// SourceName returns a short provider label for logs (e.g. "ChatGPT").
	SourceName() string
}
