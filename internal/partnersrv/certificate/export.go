package certificate

import (
	"context"
	"fmt"
	"io"

	"github.com/productfruits/partnerhub-internal/pkg/types"
)

// Format is the export artifact format. PDF exports are landscape.
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

func (f Format) IsValid() bool {
	return f == FormatPNG || f == FormatPDF
}

// Extension returns the artifact file extension without the dot.
func (f Format) Extension() string {
	return string(f)
}

// FileName returns the artifact name for a certificate of the given tier,
// `product-fruits-<tier>-certificate.<ext>`.
func FileName(tier types.Tier, format Format) string {
	return fmt.Sprintf("product-fruits-%s-certificate.%s", tier, format.Extension())
}

// Exporter converts a rendered certificate surface into a downloadable
// artifact. The surface is the SVG produced by Render; implementations
// rasterize it to PNG or wrap it in a landscape PDF page. Rasterization lives
// outside this service.
type Exporter interface {
	Export(ctx context.Context, surface []byte, format Format, w io.Writer) error
}
