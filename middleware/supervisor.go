package middleware

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
)

// FailureHook runs after a handler failure has been intercepted and
// before the diagnostic view is written.
type FailureHook func(c *gin.Context, failure error)

var diagnosticPage = template.Must(template.New("diagnostic").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <title>Something went wrong</title>
</head>
<body style="padding: 40px; font-family: sans-serif">
  <h2 style="color: #b5451b">Something went wrong</h2>
  <div style="white-space: pre-wrap; margin-top: 12px; color: #333">{{.Message}}</div>
  <details style="margin-top: 12px; color: #666">
    <summary>Stack trace</summary>
    <pre>{{.Stack}}</pre>
  </details>
</body>
</html>`))

// RenderSupervisor intercepts panics raised by any later handler, logs
// them and replaces the response with a diagnostic view carrying the
// error message and stack. The failure is terminal for the request; hooks
// decide what else becomes unusable.
func RenderSupervisor(hooks ...FailureHook) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			failure, ok := rec.(error)
			if !ok {
				failure = fmt.Errorf("%v", rec)
			}
			stack := string(debug.Stack())
			log.Printf("❌ Uncaught error in %s %s: %v\n%s", c.Request.Method, c.Request.URL.Path, failure, stack)

			for _, hook := range hooks {
				hook(c, failure)
			}

			writeDiagnostic(c, failure.Error(), stack)
		}()

		c.Next()
	}
}

func writeDiagnostic(c *gin.Context, message, stack string) {
	if c.Writer.Written() {
		c.Abort()
		return
	}

	if strings.Contains(c.GetHeader("Accept"), "text/html") {
		var buf bytes.Buffer
		if err := diagnosticPage.Execute(&buf, gin.H{"Message": message, "Stack": stack}); err == nil {
			c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", buf.Bytes())
			c.Abort()
			return
		}
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error":   "Something went wrong",
		"message": message,
		"stack":   stack,
	})
}
