// Command sendmail reads the crawl job's JSON file and emails the full list
// of enrollment URLs to one recipient over SMTP. Configuration or transport
// failures exit non-zero.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jessevdk/go-flags"

	"github.com/dkoval/linktrack/app/mail"
)

type options struct {
	Input     string `long:"input" env:"INPUT" default:"enrollLinks.json" description:"JSON file holding the array of enroll URLs"`
	SMTPHost  string `long:"smtp-host" env:"SMTP_HOST" required:"true" description:"SMTP server host"`
	SMTPPort  int    `long:"smtp-port" env:"SMTP_PORT" default:"587" description:"SMTP server port"`
	SMTPUser  string `long:"smtp-user" env:"SMTP_USER" required:"true" description:"SMTP username"`
	SMTPPass  string `long:"smtp-pass" env:"SMTP_PASS" required:"true" description:"SMTP password"`
	FromEmail string `long:"from-email" env:"FROM_EMAIL" description:"Sender address (defaults to SMTP user)"`
	ToEmail   string `long:"to-email" env:"TO_EMAIL" description:"Recipient address (or first positional argument)"`
	Subject   string `long:"subject" env:"EMAIL_SUBJECT" description:"Subject override"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var opts options

	parser := flags.NewParser(&opts, flags.Default)
	args, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return fmt.Errorf("failed to parse configuration: %w", err)
	}

	to := opts.ToEmail
	if len(args) > 0 {
		to = args[0]
	}
	if to == "" {
		return fmt.Errorf("recipient is required (positional argument or --to-email)")
	}

	urls, err := readURLs(opts.Input)
	if err != nil {
		return err
	}

	subject := opts.Subject
	if subject == "" {
		subject = fmt.Sprintf("Course enroll links (%d)", len(urls))
	}

	from := opts.FromEmail
	if from == "" {
		from = opts.SMTPUser
	}

	mailer := mail.NewSMTPMailer(opts.SMTPHost, opts.SMTPPort, opts.SMTPUser, opts.SMTPPass, from)
	if err := mailer.Send(to, subject, buildBody(urls)); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	fmt.Printf("Sent %d links to %s\n", len(urls), to)
	return nil
}

// readURLs loads the JSON array, trims entries, drops empties, dedupes and
// sorts, so the mail body is stable regardless of how the file was produced.
func readURLs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s must be a JSON array of strings: %w", path, err)
	}

	seen := make(map[string]bool)
	urls := make([]string, 0, len(raw))
	for _, u := range raw {
		u = strings.TrimSpace(u)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}

	sort.Strings(urls)
	return urls, nil
}

func buildBody(urls []string) string {
	var body strings.Builder
	fmt.Fprintf(&body, "Course enroll links: %d\n\n", len(urls))
	for _, u := range urls {
		body.WriteString(u)
		body.WriteString("\n")
	}
	return body.String()
}
