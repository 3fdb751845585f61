package certificate

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/productfruits/partnerhub-internal/pkg/types"
)

func TestFileName(t *testing.T) {
	assert.Equal(t, "product-fruits-core-certificate.png", FileName(types.TierCore, FormatPNG))
	assert.Equal(t, "product-fruits-premium-certificate.pdf", FileName(types.TierPremium, FormatPDF))
	assert.Equal(t, "product-fruits-platinum-certificate.png", FileName(types.TierPlatinum, FormatPNG))
}

func TestFormatIsValid(t *testing.T) {
	assert.True(t, FormatPNG.IsValid())
	assert.True(t, FormatPDF.IsValid())
	assert.False(t, Format("svg").IsValid())
}

func TestRenderSurface(t *testing.T) {
	svg, err := Render(Form{
		Type:               types.CertificatePersonal,
		Tier:               types.TierPremium,
		FirstName:          "Jane",
		LastName:           "Doe",
		RepresentativeName: "Pat Smith",
		IssueDate:          time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	out := string(svg)
	assert.Contains(t, out, "Certificate of Partnership")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "is an official premium partner of Product Fruits")
	assert.Contains(t, out, "June 1, 2025")
	assert.Contains(t, out, "Pat Smith")
}

func TestRenderEscapesSubject(t *testing.T) {
	svg, err := Render(Form{
		Type:        types.CertificateCompany,
		Tier:        types.TierCore,
		CompanyName: "Smith & Jones <Ltd>",
		IssueDate:   time.Now(),
	})
	require.NoError(t, err)
	out := string(svg)
	assert.Contains(t, out, "Smith &amp; Jones &lt;Ltd&gt;")
	assert.False(t, strings.Contains(out, "<Ltd>"))
}

func TestRenderBadge(t *testing.T) {
	for _, tier := range types.Tiers() {
		badge, err := RenderBadge(tier)
		require.NoError(t, err)
		assert.Contains(t, string(badge), string(tier))
	}
}
