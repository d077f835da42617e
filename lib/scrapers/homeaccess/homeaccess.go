package homeaccess

import (
	"bytes"
	"context"
	"fmt"
	"hacview-backend/lib/restyutil"
	"hacview-backend/lib/telemetry"
	"net/http/cookiejar"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/homeaccess")

var LoginFailed = fmt.Errorf("Failed to login to your account.")

const loginPath = "/HomeAccess/Account/LogOn"
const gradebookPath = "/HomeAccess/Content/Student/Assignments.aspx"

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

type ClientOptions struct {
	BaseUrl string
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/homeaccess/http")

	c := &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}
	return c, nil
}

// SetInstrumentOutput dumps every request/response transcript this
// client makes to the given output, for debugging scrape breakage.
func (c *Client) SetInstrumentOutput(output restyutil.InstrumentOutput) {
	restyutil.InstrumentClient(c.Http, output)
}

func (c *Client) LoginUsernamePassword(ctx context.Context, username, password string) error {
	ctx, span := tracer.Start(ctx, "client:LoginUsernamePassword")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get(loginPath)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch login page")
		return err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse login page html")
		return err
	}

	verificationToken := doc.Find("input[name=__RequestVerificationToken]").AttrOr("value", "")
	if verificationToken == "" {
		span.SetStatus(codes.Error, "failed to find verification token")
		return fmt.Errorf("could not find request verification token")
	}

	res, err = c.Http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"__RequestVerificationToken": verificationToken,
			"Database":                   "10",
			"LogOnDetails.UserName":      username,
			"LogOnDetails.Password":      password,
		}).
		Post(loginPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make login request")
		return err
	}

	// a rejected login renders the login form again
	if IsSessionExpired(res.String()) {
		span.SetStatus(codes.Error, "portal rejected credentials")
		return LoginFailed
	}
	return nil
}

// FetchGradebook returns the classes page exactly as the portal
// rendered it. Extraction is a separate, pure step.
func (c *Client) FetchGradebook(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "client:FetchGradebook")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get(gradebookPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch gradebook page")
		return "", err
	}
	return res.String(), nil
}

// Scrape fetches the classes page and runs the full extraction over
// it. There are no retries, the caller decides how to recover from
// ErrSessionExpired.
func (c *Client) Scrape(ctx context.Context) (Gradebook, error) {
	ctx, span := tracer.Start(ctx, "client:Scrape")
	defer span.End()

	rawHtml, err := c.FetchGradebook(ctx)
	if err != nil {
		return Gradebook{}, err
	}
	gradebook, err := ParseGradebook(rawHtml)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to extract gradebook")
		return Gradebook{}, err
	}
	return gradebook, nil
}
