package monitor

import (
	"bytes"
	"html/template"
	"log"
	"net/http"

	"admissions-intake-api/services"
	"admissions-intake-api/utils"

	"github.com/gin-gonic/gin"
)

var admissionsPage = template.Must(template.New("admissions").Funcs(template.FuncMap{
	"date":    utils.FormatListingDate,
	"pending": utils.IsPendingStatus,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>Admin Admissions Dashboard</title>
  <style>
    body { padding: 40px 20px; font-family: serif; background: #f8f4ec; min-height: 100vh; margin: 0; }
    h1 { color: #1b3a2d; }
    table { width: 100%; border-collapse: collapse; background: #fff; box-shadow: 0 4px 12px rgba(0,0,0,0.1); }
    thead { background: #1b3a2d; color: #fff; }
    th, td { padding: 12px; text-align: left; }
    tbody tr { border-bottom: 1px solid #eee; }
    .status { padding: 4px 8px; border-radius: 4px; font-size: 12px; background: #edf7f1; color: #2d6a4f; }
    .status.pending { background: #fef9ec; color: #7a6200; }
  </style>
</head>
<body>
  <h1>Admin Admissions Dashboard</h1>
  <table>
    <thead>
      <tr><th>App ID</th><th>Student Name</th><th>Department</th><th>Documents</th><th>Status</th><th>Received</th></tr>
    </thead>
    <tbody>
    {{range .}}
      <tr>
        <td><strong>{{.ApplicationID}}</strong></td>
        <td>{{.StudentName}}</td>
        <td>{{.Department}}</td>
        <td>
          {{if .PhotoURL}}<a href="{{.PhotoURL}}" target="_blank" rel="noreferrer">Photo</a>{{else}}Photo{{end}} |
          {{if .TranscriptURL}}<a href="{{.TranscriptURL}}" target="_blank" rel="noreferrer">Transcript</a>{{else}}Transcript{{end}}
        </td>
        <td><span class="status{{if pending .Status}} pending{{end}}">{{.Status}}</span></td>
        <td>{{date .CreatedAt}}</td>
      </tr>
    {{else}}
      <tr><td colspan="6">No applications yet.</td></tr>
    {{end}}
    </tbody>
  </table>
</body>
</html>`))

// RegisterAdmissionsPage mounts the read-only admin table at /admin/admissions.
func RegisterAdmissionsPage(router *gin.Engine, lister services.AdmissionLister) {
	router.GET("/admin/admissions", func(c *gin.Context) {
		admissions, err := services.ListAdmissionViews(c.Request.Context(), lister)
		if err != nil {
			c.Data(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte(err.Error()))
			return
		}

		var buf bytes.Buffer
		if err := admissionsPage.Execute(&buf, admissions); err != nil {
			log.Printf("admissions page: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to render page"})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
	})
}
