package homeaccess

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"slices"

	"github.com/PuerkitoBio/goquery"
	"github.com/antzucaro/matchr"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

// District is one hit of the portal vendor's district lookup.
type District struct {
	Name string `json:"districtName"`
	Link string `json:"districtLink"`
}

const districtSearchPath = "/District/Search"

var districtClient = func() *resty.Client {
	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		panic(err)
	}
	client.SetCookieJar(jar)
	return client
}()

// SearchDistricts runs the vendor's two-call lookup protocol: a GET to
// seed the anti-forgery token and its cookie, then a POST carrying the
// token, a state code and the free-text query.
func SearchDistricts(ctx context.Context, baseUrl, stateCode, query string) ([]District, error) {
	ctx, span := tracer.Start(ctx, "SearchDistricts")
	defer span.End()

	res, err := districtClient.R().
		SetContext(ctx).
		Get(baseUrl + districtSearchPath)
	if err != nil {
		span.SetStatus(codes.Error, "failed to seed search tokens")
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse search page html")
		return nil, err
	}

	verificationToken := doc.Find("input[name=__RequestVerificationToken]").AttrOr("value", "")
	if verificationToken == "" {
		span.SetStatus(codes.Error, "failed to find verification token")
		return nil, fmt.Errorf("%w: district search page has no verification token", ErrMalformedDocument)
	}

	var districts []District
	res, err = districtClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"__RequestVerificationToken": verificationToken,
			"StateCode":                  stateCode,
			"Query":                      query,
		}).
		SetResult(&districts).
		Post(baseUrl + districtSearchPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "district search request failed")
		return nil, err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "district search request rejected")
		return nil, fmt.Errorf("district search failed with status %d", res.StatusCode())
	}

	return districts, nil
}

// RankDistricts orders search hits by name similarity to the query,
// best match first. The portal returns hits in no useful order.
func RankDistricts(query string, districts []District) []District {
	ranked := slices.Clone(districts)
	slices.SortStableFunc(ranked, func(a, b District) int {
		left := matchr.JaroWinkler(a.Name, query, false)
		right := matchr.JaroWinkler(b.Name, query, false)
		if left > right {
			return -1
		}
		if left < right {
			return 1
		}
		return 0
	})
	return ranked
}
