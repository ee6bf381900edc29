// internal/app/system/notify/workers.go
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"github.com/dalemusser/orghub/internal/app/system/mailer"
	"github.com/dalemusser/orghub/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// queueGroup spreads each kind's envelopes across replicas so a
// notification is delivered once even when several instances run.
const queueGroup = "orghub-notify"

const deliverTimeout = 15 * time.Second

// WorkerConfig carries the transport credentials the delivery workers
// need. Empty credentials disable the matching kind: its envelopes are
// consumed and dropped with a warning instead of piling up.
type WorkerConfig struct {
	SiteName      string
	SMSGatewayURL string
	SMSToken      string
	TelegramToken string
}

// Workers drains the bus: one queue subscription per transport kind,
// each handing envelopes to that kind's deliverer.
type Workers struct {
	cfg    WorkerConfig
	nc     *nats.Conn
	mail   *mailer.Mailer
	client *http.Client
	log    *zap.Logger
	subs   []*nats.Subscription
}

func NewWorkers(cfg WorkerConfig, nc *nats.Conn, mail *mailer.Mailer, logger *zap.Logger) *Workers {
	return &Workers{
		cfg:    cfg,
		nc:     nc,
		mail:   mail,
		client: &http.Client{Timeout: deliverTimeout},
		log:    logger,
	}
}

// Start subscribes the delivery workers. Stop unsubscribes them.
func (w *Workers) Start() error {
	kinds := map[string]func(context.Context, Envelope) error{
		models.ChannelEmail:    w.deliverEmail,
		models.ChannelSMS:      w.deliverSMS,
		models.ChannelTelegram: w.deliverTelegram,
		models.ChannelWebhook:  w.deliverWebhook,
	}
	for kind, deliver := range kinds {
		kind, deliver := kind, deliver
		sub, err := w.nc.QueueSubscribe(SubjectFor(kind), queueGroup, func(msg *nats.Msg) {
			w.handle(kind, deliver, msg)
		})
		if err != nil {
			w.Stop()
			return fmt.Errorf("subscribe %s: %w", SubjectFor(kind), err)
		}
		w.subs = append(w.subs, sub)
	}
	w.log.Info("notification delivery workers started", zap.Int("kinds", len(kinds)))
	return nil
}

// Stop drains every subscription so in-flight envelopes finish.
func (w *Workers) Stop() {
	for _, sub := range w.subs {
		if err := sub.Drain(); err != nil {
			w.log.Warn("worker drain failed", zap.String("subject", sub.Subject), zap.Error(err))
		}
	}
	w.subs = nil
}

func (w *Workers) handle(kind string, deliver func(context.Context, Envelope) error, msg *nats.Msg) {
	var env Envelope
	if err := json.Unmarshal(msg.Data, &env); err != nil {
		w.log.Error("malformed notification envelope",
			zap.String("kind", kind), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()

	if err := deliver(ctx, env); err != nil {
		w.log.Error("notification delivery failed",
			zap.String("kind", kind),
			zap.String("user_id", env.UserID),
			zap.String("channel_id", env.ChannelID),
			zap.Error(err))
		return
	}
	w.log.Debug("notification delivered",
		zap.String("kind", kind), zap.String("user_id", env.UserID))
}

func (w *Workers) deliverEmail(_ context.Context, env Envelope) error {
	msg := mailer.BuildNotificationEmail(mailer.NotificationEmailData{
		SiteName: w.cfg.SiteName,
		Subject:  env.Subject,
		Body:     env.Body,
		HTMLBody: template.HTML(env.HTMLBody),
	})
	msg.To = env.Address
	return w.mail.Send(msg)
}

// deliverSMS POSTs to the configured gateway. The gateway contract is
// a JSON body {"to", "message"} with a bearer token.
func (w *Workers) deliverSMS(ctx context.Context, env Envelope) error {
	if w.cfg.SMSGatewayURL == "" {
		w.log.Warn("sms delivery skipped, no gateway configured", zap.String("user_id", env.UserID))
		return nil
	}
	payload, err := json.Marshal(map[string]string{
		"to":      env.Number,
		"message": env.Subject + ": " + env.Body,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.SMSGatewayURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if w.cfg.SMSToken != "" {
		req.Header.Set("Authorization", "Bearer "+w.cfg.SMSToken)
	}
	return w.doExpectOK(req, "sms gateway")
}

func (w *Workers) deliverTelegram(ctx context.Context, env Envelope) error {
	if w.cfg.TelegramToken == "" {
		w.log.Warn("telegram delivery skipped, no bot token configured", zap.String("user_id", env.UserID))
		return nil
	}
	api := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", w.cfg.TelegramToken)
	form := url.Values{
		"chat_id": {env.ChatID},
		"text":    {env.Subject + "\n\n" + env.Body},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, api, bytes.NewReader([]byte(form.Encode())))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return w.doExpectOK(req, "telegram api")
}

// deliverWebhook POSTs the message to the channel's URL. The request
// carries an X-Orghub-Signature header: an HS256 JWT signed with the
// channel's secret, so the receiver can verify the call came from us.
func (w *Workers) deliverWebhook(ctx context.Context, env Envelope) error {
	payload, err := json.Marshal(map[string]string{
		"user_id": env.UserID,
		"subject": env.Subject,
		"body":    env.Body,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, env.URL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	if env.Secret != "" {
		sig, err := webhookSignature(env)
		if err != nil {
			return err
		}
		req.Header.Set("X-Orghub-Signature", sig)
	}
	return w.doExpectOK(req, "webhook")
}

func webhookSignature(env Envelope) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "orghub",
		Subject:   env.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(5 * time.Minute)),
	})
	return tok.SignedString([]byte(env.Secret))
}

func (w *Workers) doExpectOK(req *http.Request, what string) error {
	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: unexpected status %d", what, resp.StatusCode)
	}
	return nil
}
