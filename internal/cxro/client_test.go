package cxro

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ctderoo/reflectivity/internal/httputil"
	"github.com/ctderoo/reflectivity/internal/monitoring"
	"github.com/ctderoo/reflectivity/internal/scan"
)

func TestMain(m *testing.M) {
	monitoring.SetLogger(nil)
	m.Run()
}

// fakeService emulates the CGI endpoint: each POST answers with a result
// page linking a data file, and each data file holds Npts+1 rows spanning
// [Min, Max].
type fakeService struct {
	mu    sync.Mutex
	forms []url.Values
	files map[string]string
}

func newFakeService() *fakeService {
	return &fakeService{files: make(map[string]string)}
}

func (s *fakeService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/cgi-bin/", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		s.forms = append(s.forms, r.PostForm)
		id := len(s.forms)

		min, _ := strconv.ParseFloat(r.PostForm.Get("Min"), 64)
		max, _ := strconv.ParseFloat(r.PostForm.Get("Max"), 64)
		npts, _ := strconv.Atoi(r.PostForm.Get("Npts"))

		body := " fake mirror description\n Energy (eV), Reflectivity, Transmission\n"
		for i := 0; i <= npts; i++ {
			x := min + float64(i)*(max-min)/float64(npts)
			body += fmt.Sprintf("  %.6f  %.5f  %.5f\n", x, 0.5, 0.01)
		}
		path := fmt.Sprintf("/tmp_dat/xray%d.dat", id)
		s.files[path] = body
		s.mu.Unlock()

		fmt.Fprintf(w, `<Head><Title>Reflectivity</Title></Head>
<Body><h2>result <a HREF="%s">data</a></h2></Body>`, path)
	})
	mux.HandleFunc("/tmp_dat/", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		body, ok := s.files[r.URL.Path]
		s.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	})
	return mux
}

func (s *fakeService) form(n int) url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.forms[n]
}

func (s *fakeService) requestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.forms)
}

func TestEnergyScanChunksAndStitches(t *testing.T) {
	svc := newFakeService()
	srv := httptest.NewServer(svc.handler())
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	table, err := c.EnergyScan(NewSingleLayerMirror(), 100, 200, 600, 2.5)
	require.NoError(t, err)
	require.Len(t, table, 601)
	require.Equal(t, 2, svc.requestCount())

	// First chunk carries the cap, second the remainder.
	require.Equal(t, "500", svc.form(0).Get("Npts"))
	require.Equal(t, "100", svc.form(1).Get("Npts"))
	require.Equal(t, "Energy", svc.form(0).Get("Scan"))
	require.Equal(t, "2.5", svc.form(0).Get("Fixed"))
	require.Equal(t, "100", svc.form(0).Get("Min"))
	require.Equal(t, "200", svc.form(1).Get("Max"))
	require.Equal(t, "Linear", svc.form(0).Get("Plot"))
	require.Equal(t, "Plot", svc.form(0).Get("Output"))
	require.Equal(t, "C", svc.form(0).Get("Layer"))

	// Chunk boundary must appear exactly once.
	for i := 0; i+1 < len(table); i++ {
		require.Less(t, table[i].X, table[i+1].X, "row %d", i)
	}
	require.Equal(t, 100.0, table[0].X)
	require.Equal(t, 200.0, table[len(table)-1].X)
}

func TestScanRejectsOutOfBoundsWithoutRequest(t *testing.T) {
	svc := newFakeService()
	srv := httptest.NewServer(svc.handler())
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	_, err := c.EnergyScan(NewMultilayerMirror(), 10, 1000, 100, 2.0)

	var verr *scan.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, 0, svc.requestCount())
}

func TestThickMirrorScanIsUnbounded(t *testing.T) {
	svc := newFakeService()
	srv := httptest.NewServer(svc.handler())
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	table, err := c.EnergyScan(NewThickMirror(), 10, 50000, 100, 1.0)
	require.NoError(t, err)
	require.Len(t, table, 101)
}

func TestWavelengthAndAngleScanKinds(t *testing.T) {
	svc := newFakeService()
	srv := httptest.NewServer(svc.handler())
	defer srv.Close()
	c := NewClient(srv.Client(), srv.URL)

	_, err := c.WavelengthScan(NewSingleLayerMirror(), 1, 30, 50, 5.0)
	require.NoError(t, err)
	require.Equal(t, "Wave", svc.form(0).Get("Scan"))

	_, err = c.AngleScan(NewSingleLayerMirror(), 0, 90, 50, 500)
	require.NoError(t, err)
	require.Equal(t, "Angle", svc.form(1).Get("Scan"))
	require.Equal(t, "500", svc.form(1).Get("Fixed"))
}

func TestScanSurfacesErrorPage(t *testing.T) {
	rc := httputil.NewReplayClient().Queue(http.StatusOK,
		"<html><body>Error: unknown chemical formula</body></html>")
	c := NewClient(rc, "http://service.test")

	_, err := c.EnergyScan(NewThickMirror(), 100, 200, 10, 1.0)
	require.ErrorIs(t, err, ErrErrorPage)
	require.Equal(t, 1, rc.RequestCount())
}

func TestScanSurfacesTransportFailures(t *testing.T) {
	t.Run("connection refused", func(t *testing.T) {
		refused := errors.New("connection refused")
		rc := httputil.NewReplayClient().QueueError(refused)
		c := NewClient(rc, "http://service.test")
		_, err := c.EnergyScan(NewThickMirror(), 100, 200, 10, 1.0)
		require.ErrorIs(t, err, refused)
	})

	t.Run("non-success status", func(t *testing.T) {
		rc := httputil.NewReplayClient().Queue(http.StatusServiceUnavailable, "down")
		c := NewClient(rc, "http://service.test")
		_, err := c.EnergyScan(NewThickMirror(), 100, 200, 10, 1.0)
		require.ErrorContains(t, err, "status 503")
	})
}

func TestScanPostsFormEncoded(t *testing.T) {
	rc := httputil.NewReplayClient().Queue(http.StatusOK,
		"<html>no such page</html>")
	c := NewClient(rc, "http://service.test")

	_, _ = c.EnergyScan(NewThickMirror(), 100, 200, 10, 1.0)

	req := rc.Request(0)
	require.NotNil(t, req)
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "http://service.test/cgi-bin/mirror.pl", req.URL.String())
	require.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))

	form, err := url.ParseQuery(rc.RequestBody(0))
	require.NoError(t, err)
	require.Equal(t, "SiO2", form.Get("Formula"))
	require.Equal(t, "10", form.Get("Npts"))
}
