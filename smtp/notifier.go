// Package smtp delivers run digests by e-mail with the results CSV
// attached.
package smtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fwojciec/gradscout"
)

// Defaults match a Gmail account with an app password.
const (
	DefaultHost = "smtp.gmail.com"
	DefaultPort = 465
)

// Ensure Notifier implements gradscout.Notifier at compile time.
var _ gradscout.Notifier = (*Notifier)(nil)

// SendFunc transmits a prepared message.
type SendFunc func(ctx context.Context, addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// Notifier sends digests through an SMTP server. Port 465 uses implicit
// TLS; any other port uses STARTTLS when the server offers it.
type Notifier struct {
	Host     string
	Port     int
	Username string
	Password string
	To       string

	// Now returns the Date header time. Defaults to time.Now.
	Now func() time.Time

	send SendFunc
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithSendFunc replaces the SMTP transport.
func WithSendFunc(fn SendFunc) Option {
	return func(n *Notifier) {
		n.send = fn
	}
}

// NewNotifier creates a Notifier authenticating as username and delivering
// to the given recipient.
func NewNotifier(host string, port int, username, password, to string, opts ...Option) *Notifier {
	n := &Notifier{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		To:       to,
		Now:      time.Now,
	}
	if n.Host == "" {
		n.Host = DefaultHost
	}
	if n.Port == 0 {
		n.Port = DefaultPort
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.send == nil {
		n.send = n.transmit
	}
	return n
}

// Notify builds the digest message and sends it.
func (n *Notifier) Notify(ctx context.Context, digest *gradscout.Digest) error {
	if n.Username == "" || n.Password == "" || n.To == "" {
		return gradscout.Errorf(gradscout.EINVALID, "smtp credentials and recipient required")
	}
	if digest == nil || digest.AttachmentPath == "" {
		return gradscout.Errorf(gradscout.EINVALID, "digest attachment required")
	}

	attachment, err := os.ReadFile(digest.AttachmentPath)
	if err != nil {
		return fmt.Errorf("read attachment: %w", err)
	}

	now := time.Now()
	if n.Now != nil {
		now = n.Now()
	}
	msg, err := BuildMessage(n.Username, n.To, digest, filepath.Base(digest.AttachmentPath), attachment, now)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(n.Host, strconv.Itoa(n.Port))
	auth := smtp.PlainAuth("", n.Username, n.Password, n.Host)
	if err := n.send(ctx, addr, auth, n.Username, []string{n.To}, msg); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	return nil
}

// transmit delivers msg over implicit TLS on port 465 and via
// smtp.SendMail otherwise.
func (n *Notifier) transmit(ctx context.Context, addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	if n.Port != 465 {
		return smtp.SendMail(addr, auth, from, to, msg)
	}

	dialer := &tls.Dialer{Config: &tls.Config{ServerName: n.Host}}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	c, err := smtp.NewClient(conn, n.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer c.Close()

	if err := c.Auth(auth); err != nil {
		return err
	}
	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

// BuildMessage renders a multipart message with a plain-text body and the
// CSV attached as base64.
func BuildMessage(from, to string, digest *gradscout.Digest, filename string, attachment []byte, date time.Time) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	sender := mail.Address{Name: digest.FromName, Address: from}
	var out bytes.Buffer
	fmt.Fprintf(&out, "From: %s\r\n", sender.String())
	fmt.Fprintf(&out, "To: %s\r\n", to)
	fmt.Fprintf(&out, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", digest.Subject))
	fmt.Fprintf(&out, "Date: %s\r\n", date.Format(time.RFC1123Z))
	out.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&out, "Content-Type: multipart/mixed; boundary=%s\r\n\r\n", mw.Boundary())

	body, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"text/plain; charset=utf-8"},
		"Content-Transfer-Encoding": {"7bit"},
	})
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(body, "Hi,\r\n\r\nAttached are %d curated MSc opportunities (scholarships/TA/GA/tuition waivers).\r\n"+
		"Please verify details on the official pages.\r\n\r\nRegards,\r\n%s\r\n", digest.Rows, digest.FromName)

	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"text/csv; charset=utf-8"},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": filename})},
	})
	if err != nil {
		return nil, err
	}
	if err := writeBase64(part, attachment); err != nil {
		return nil, err
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}
	out.Write(buf.Bytes())
	return out.Bytes(), nil
}

// writeBase64 encodes data in 76-character lines.
func writeBase64(w io.Writer, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 76 {
		if _, err := w.Write([]byte(encoded[:76] + "\r\n")); err != nil {
			return err
		}
		encoded = encoded[76:]
	}
	_, err := w.Write([]byte(encoded + "\r\n"))
	return err
}
