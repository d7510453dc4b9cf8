package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

var digestTemplate = template.Must(template.New("digest").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2933;">
  <h2>New jobs for "{{.AlertTitle}}"</h2>
  {{if .Keywords}}<p>Keywords: {{join .Keywords ", "}}</p>{{end}}
  <p>{{.Total}} matching job{{if ne .Total 1}}s{{end}} found. Here are the latest:</p>
  <ul style="padding-left: 16px;">
  {{range .Jobs}}
    <li style="margin-bottom: 12px;">
      <a href="{{.URL}}"><strong>{{.Title}}</strong></a><br>
      {{.Company}} &middot; {{.Location}}{{if .Remote}} &middot; Remote{{end}}<br>
      <span>{{.Salary}}</span>
    </li>
  {{end}}
  </ul>
  <p style="font-size: 12px; color: #7b8794;">You receive this because of a job alert in Job Copilot.</p>
</body>
</html>`))

func renderHTML(digest Digest) (string, error) {
	var buf bytes.Buffer
	if err := digestTemplate.Execute(&buf, digest); err != nil {
		return "", fmt.Errorf("failed to render digest: %w", err)
	}
	return buf.String(), nil
}

func renderText(digest Digest) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("New jobs for %q (%d found)\n\n", digest.AlertTitle, digest.Total))
	for _, job := range digest.Jobs {
		sb.WriteString(fmt.Sprintf("- %s, %s (%s) %s\n  %s\n", job.Title, job.Company, job.Location, job.Salary, job.URL))
	}
	return sb.String()
}

func subject(digest Digest) string {
	return fmt.Sprintf("%d new jobs for %s", digest.Total, digest.AlertTitle)
}
