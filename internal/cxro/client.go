package cxro

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ctderoo/reflectivity/internal/httputil"
	"github.com/ctderoo/reflectivity/internal/monitoring"
	"github.com/ctderoo/reflectivity/internal/scan"
)

// Client talks to the reflectivity service. One logical scan may fan out
// into several requests when it exceeds MaxPointsPerRequest; see Scan.
type Client struct {
	httpc   httputil.Doer
	baseURL string
}

// NewClient creates a client. A nil Doer selects a default HTTP client and
// an empty baseURL selects the public CXRO server.
func NewClient(d httputil.Doer, baseURL string) *Client {
	if d == nil {
		d = httputil.DefaultClient()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{httpc: d, baseURL: strings.TrimRight(baseURL, "/")}
}

// Scan runs a possibly chunked 1D scan of the given kind over dom, holding
// fixed constant (the grazing angle in deg for energy and wavelength
// scans, the photon energy in eV for angle scans). The assembled table
// holds dom.Points+1 rows spanning [dom.Start, dom.End].
func (c *Client) Scan(m Mirror, kind ScanKind, dom scan.Domain, fixed float64) (scan.Table, error) {
	r := scan.NewRunner(MaxPointsPerRequest, func(ch scan.Chunk) (scan.Table, error) {
		return c.scanChunk(m, kind, ch, fixed)
	})
	return r.Run(dom, m.bounds(kind))
}

// EnergyScan sweeps photon energy over [e0, e1] eV at a fixed grazing
// angle in deg.
func (c *Client) EnergyScan(m Mirror, e0, e1 float64, points int, angleDeg float64) (scan.Table, error) {
	return c.Scan(m, EnergyScan, scan.Domain{Start: e0, End: e1, Points: points}, angleDeg)
}

// WavelengthScan sweeps wavelength over [l0, l1] nm at a fixed grazing
// angle in deg.
func (c *Client) WavelengthScan(m Mirror, l0, l1 float64, points int, angleDeg float64) (scan.Table, error) {
	return c.Scan(m, WavelengthScan, scan.Domain{Start: l0, End: l1, Points: points}, angleDeg)
}

// AngleScan sweeps grazing angle over [t0, t1] deg at a fixed photon
// energy in eV.
func (c *Client) AngleScan(m Mirror, t0, t1 float64, points int, energyEV float64) (scan.Table, error) {
	return c.Scan(m, AngleScan, scan.Domain{Start: t0, End: t1, Points: points}, energyEV)
}

// scanChunk performs one round trip: POST the form, locate the data link
// in the result page, download and parse the data file.
func (c *Client) scanChunk(m Mirror, kind ScanKind, ch scan.Chunk, fixed float64) (scan.Table, error) {
	form := m.formValues()
	form.Set("Scan", kind.formName())
	form.Set("Min", ftoa(ch.Start))
	form.Set("Max", ftoa(ch.End))
	form.Set("Npts", strconv.Itoa(ch.Points))
	form.Set("Fixed", ftoa(fixed))
	form.Set("Plot", "Linear")
	form.Set("Output", "Plot")

	endpoint := c.baseURL + "/cgi-bin/" + m.script()
	monitoring.Logf("cxro: %s scan [%g, %g] npts=%d via %s", kind, ch.Start, ch.End, ch.Points, endpoint)

	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("building scan request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting scan request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scan request: status %d", resp.StatusCode)
	}

	page, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading result page: %w", err)
	}
	// The service always opens a successful result page with <Head>;
	// anything else is its error report.
	if !bytes.HasPrefix(page, []byte("<Head>")) {
		return nil, fmt.Errorf("%w: %s", ErrErrorPage, snippet(page))
	}

	href, err := dataLink(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}
	return c.fetchTable(href)
}

// fetchTable downloads and parses the plaintext data file linked from a
// result page. The link is resolved against the base URL.
func (c *Client) fetchTable(href string) (scan.Table, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return nil, fmt.Errorf("%w: bad data link %q", ErrErrorPage, href)
	}

	req, err := http.NewRequest(http.MethodGet, base.ResolveReference(ref).String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building data request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading data file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading data file: status %d", resp.StatusCode)
	}
	return parseTable(resp.Body)
}

func snippet(page []byte) string {
	s := strings.TrimSpace(string(page))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
