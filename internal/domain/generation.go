package domain

// PayloadKind records how the encoded text was produced.
type PayloadKind string

const (
	PayloadText   PayloadKind = "text"
	PayloadWiFi   PayloadKind = "wifi"
	PayloadSocial PayloadKind = "social"
)

// GenerateCommand describes one end-to-end generation: render, save, record.
type GenerateCommand struct {
	Kind PayloadKind
	// Request.Text is the exact payload that is encoded and recorded.
	Request GenerationRequest
	// Output is the destination path. Empty means <output dir>/<default name>.<format>.
	Output    string
	NoHistory bool
}

// GenerateResult is returned after the image has been written.
type GenerateResult struct {
	Payload   string
	Path      string
	Format    ImageFormat
	PixelSize int
	Bytes     int64
	Recorded  bool
	Image     *RenderedImage
}

// ImageFormat is the raster encoding used when saving.
type ImageFormat string

const (
	FormatPNG  ImageFormat = "png"
	FormatJPEG ImageFormat = "jpeg"
)

// Extension returns the canonical file extension, with dot.
func (f ImageFormat) Extension() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return ".png"
}
