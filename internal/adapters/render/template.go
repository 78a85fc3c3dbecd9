package render

import (
	"bytes"
	"fmt"
	"html/template"

	"clubsync/internal/domain/certificate"
)

// Layout dimensions in CSS pixels. The PDF branch sizes its single page to
// match so nothing wraps or clips.
const (
	layoutWidth  = 1056
	layoutHeight = 748
)

// The certificate page carries its own style reset so host styling cannot
// leak into the rendered output.
var certificatePage = template.Must(template.New("certificate").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  html, body { width: 1056px; height: 748px; background: #ffffff; }
  body {
    font-family: Georgia, 'Times New Roman', serif;
    color: #1a202c;
    display: flex;
    align-items: center;
    justify-content: center;
  }
  .frame {
    width: 1006px;
    height: 698px;
    border: 6px double #b7791f;
    padding: 48px 64px;
    text-align: center;
    display: flex;
    flex-direction: column;
    justify-content: center;
  }
  .club { font-size: 22px; letter-spacing: 3px; text-transform: uppercase; color: #744210; }
  .title { font-size: 44px; margin: 28px 0 8px; }
  .subtitle { font-size: 18px; font-style: italic; color: #4a5568; }
  .name { font-size: 38px; margin: 32px 0 12px; border-bottom: 2px solid #b7791f; display: inline-block; padding: 0 40px 8px; }
  .event { font-size: 24px; margin-top: 20px; }
  .date { font-size: 16px; color: #4a5568; margin-top: 12px; }
  .certid { font-size: 11px; color: #a0aec0; margin-top: 36px; letter-spacing: 1px; }
</style>
</head>
<body>
  <div class="frame">
    <div class="club">{{.ClubName}}</div>
    <div class="title">Certificate of Participation</div>
    <div class="subtitle">This certificate is proudly presented to</div>
    <div><span class="name">{{.UserName}}</span></div>
    <div class="event">for participating in <strong>{{.EventName}}</strong></div>
    {{if .EventDate}}<div class="date">{{.EventDate}}</div>{{end}}
    {{if .CertificateID}}<div class="certid">ID: {{.CertificateID}}</div>{{end}}
  </div>
</body>
</html>`))

// RenderHTML produces the standalone certificate document for a request.
// PRE: req has been validated
// POST: Returns a complete HTML page string
func RenderHTML(req certificate.Request) (string, error) {
	var buf bytes.Buffer
	if err := certificatePage.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("certificate template: %w", err)
	}
	return buf.String(), nil
}
