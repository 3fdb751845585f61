package certificate

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/productfruits/partnerhub-internal/pkg/types"
)

// The certificate surface is a fixed 1000x600 landscape SVG. Exporters
// rasterize it as-is; nothing here depends on the output format.

const surfaceTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="1000" height="600" viewBox="0 0 1000 600">
  <rect width="1000" height="600" fill="#ffffff"/>
  <rect x="24" y="24" width="952" height="552" fill="none" stroke="#e11d48" stroke-width="8" rx="12"/>
  <text x="500" y="170" text-anchor="middle" font-family="Helvetica, Arial, sans-serif" font-size="40" font-weight="bold" fill="#111827">Certificate of Partnership</text>
  <text x="500" y="230" text-anchor="middle" font-family="Helvetica, Arial, sans-serif" font-size="22" fill="#4b5563">This certifies that</text>
  <text x="500" y="290" text-anchor="middle" font-family="Helvetica, Arial, sans-serif" font-size="32" font-weight="600" fill="#e11d48">{{.SubjectName}}</text>
  <text x="500" y="340" text-anchor="middle" font-family="Helvetica, Arial, sans-serif" font-size="22" fill="#4b5563">is an official {{.Tier}} partner of Product Fruits</text>
  <text x="320" y="480" text-anchor="middle" font-family="Helvetica, Arial, sans-serif" font-size="18" fill="#4b5563">{{.IssueDate}}</text>
  <line x1="220" y1="500" x2="420" y2="500" stroke="#d1d5db" stroke-width="2"/>
  <text x="320" y="528" text-anchor="middle" font-family="Helvetica, Arial, sans-serif" font-size="16" fill="#4b5563">Issue date</text>
  <text x="680" y="480" text-anchor="middle" font-family="Helvetica, Arial, sans-serif" font-size="18" fill="#4b5563">{{.Representative}}</text>
  <line x1="580" y1="500" x2="780" y2="500" stroke="#d1d5db" stroke-width="2"/>
  <text x="680" y="528" text-anchor="middle" font-family="Helvetica, Arial, sans-serif" font-size="16" fill="#4b5563">Product Fruits Representative</text>
</svg>
`

const badgeTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="200" height="200" viewBox="0 0 200 200">
  <circle cx="100" cy="100" r="92" fill="{{.Fill}}" stroke="#ffffff" stroke-width="6"/>
  <text x="100" y="92" text-anchor="middle" font-family="Helvetica, Arial, sans-serif" font-size="22" font-weight="bold" fill="#ffffff">{{.Tier}}</text>
  <text x="100" y="122" text-anchor="middle" font-family="Helvetica, Arial, sans-serif" font-size="14" fill="#ffffff">partner</text>
</svg>
`

var (
	surfaceTmpl = template.Must(template.New("surface").Parse(surfaceTemplate))
	badgeTmpl   = template.Must(template.New("badge").Parse(badgeTemplate))
)

var badgeFills = map[types.Tier]string{
	types.TierCore:     "#6b7280",
	types.TierPremium:  "#e11d48",
	types.TierPlatinum: "#111827",
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// Render produces the certificate surface for a validated form.
func Render(form Form) ([]byte, error) {
	var buf bytes.Buffer
	err := surfaceTmpl.Execute(&buf, struct {
		SubjectName    string
		Tier           types.Tier
		IssueDate      string
		Representative string
	}{
		SubjectName:    xmlEscaper.Replace(form.SubjectName()),
		Tier:           form.Tier,
		IssueDate:      form.IssueDate.Format("January 2, 2006"),
		Representative: xmlEscaper.Replace(form.RepresentativeName),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderBadge produces the standalone tier badge.
func RenderBadge(tier types.Tier) ([]byte, error) {
	fill, ok := badgeFills[tier]
	if !ok {
		fill = badgeFills[types.TierCore]
	}
	var buf bytes.Buffer
	err := badgeTmpl.Execute(&buf, struct {
		Tier types.Tier
		Fill string
	}{Tier: tier, Fill: fill})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
