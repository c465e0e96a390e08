// Package slack reporta errores internos a un webhook de Slack. El envío es
// asíncrono y con timeout corto: un Slack caído nunca bloquea una respuesta.
package slack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dverdu/albaranes-api/pkg/logger"
)

// Notifier cliente del webhook entrante. Con URL vacía queda deshabilitado.
type Notifier struct {
	webhookURL string
	client     *http.Client
	log        *logger.Logger
}

// NewNotifier construye el notificador.
func NewNotifier(webhookURL string, log *logger.Logger) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 5 * time.Second},
		log:        log,
	}
}

// Enabled indica si hay webhook configurado.
func (n *Notifier) Enabled() bool { return n.webhookURL != "" }

// NotifyError publica un error 5xx en el canal configurado sin bloquear al
// llamador.
func (n *Notifier) NotifyError(method, path string, status int, err error) {
	if !n.Enabled() {
		return
	}
	go n.post(method, path, status, err)
}

func (n *Notifier) post(method, path string, status int, errIn error) {
	payload := map[string]any{
		"blocks": []map[string]any{
			{
				"type": "header",
				"text": map[string]any{"type": "plain_text", "text": fmt.Sprintf(":rotating_light: Error %d", status)},
			},
			{
				"type": "section",
				"text": map[string]any{
					"type": "mrkdwn",
					"text": fmt.Sprintf("*%s* `%s`\n```%v```", method, path, errIn),
				},
			},
			{
				"type": "context",
				"elements": []map[string]any{
					{"type": "mrkdwn", "text": time.Now().Format(time.RFC3339)},
				},
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		n.log.Error().Err(err).Msg("slack: serializar payload")
		return
	}
	resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		n.log.Error().Err(err).Msg("slack: enviar webhook")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		n.log.Error().Int("status", resp.StatusCode).Msg("slack: webhook rechazado")
	}
}
