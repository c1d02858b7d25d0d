package firmware

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/comm_utils.h templates/secrets.h.tmpl
var templatesFS embed.FS

// Support file names, fixed by the sketch's #include lines.
const (
	CommUtilsFile = "comm_utils.h"
	SecretsFile   = "secrets.h"
)

var secretsTemplate = template.Must(
	template.New("secrets.h.tmpl").
		Funcs(template.FuncMap{"cstring": cString}).
		ParseFS(templatesFS, "templates/secrets.h.tmpl"),
)

// Secrets are the network credentials written to the secrets header.
type Secrets struct {
	SSID     string
	Password string
	Broker   string
	Port     int
}

// DefaultSecrets returns placeholder credentials and a public test broker.
func DefaultSecrets() Secrets {
	return Secrets{
		SSID:     "your_SSID",
		Password: "your_PASSWORD",
		Broker:   "broker.hivemq.com",
		Port:     1883,
	}
}

// Validate checks the values can be rendered into a usable header.
func (s Secrets) Validate() error {
	if strings.TrimSpace(s.Broker) == "" {
		return fmt.Errorf("mqtt broker must not be empty")
	}
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("mqtt port %d is out of range (1-65535)", s.Port)
	}
	return nil
}

func renderSecrets(s Secrets) ([]byte, error) {
	var buf bytes.Buffer
	if err := secretsTemplate.Execute(&buf, s); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", SecretsFile, err)
	}
	return buf.Bytes(), nil
}

func commUtils() ([]byte, error) {
	b, err := templatesFS.ReadFile("templates/" + CommUtilsFile)
	if err != nil {
		return nil, fmt.Errorf("reading embedded %s: %w", CommUtilsFile, err)
	}
	return b, nil
}

func cString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}
