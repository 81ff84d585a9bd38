package cxro

import (
	"errors"
	"strings"
	"testing"
)

const resultPage = `<Head><Title>X-Ray Reflectivity</Title></Head>
<Body bgcolor=white>
<h2>Si Reflectivity, P=1, Sigma=0. nm
<a HREF="/tmp_dat/xray8127.dat">data file here</a></h2>
<img src="/tmp_dat/xray8127.gif">
</Body>`

func TestDataLink(t *testing.T) {
	href, err := dataLink(strings.NewReader(resultPage))
	if err != nil {
		t.Fatalf("dataLink returned error: %v", err)
	}
	if href != "/tmp_dat/xray8127.dat" {
		t.Errorf("href = %q, want %q", href, "/tmp_dat/xray8127.dat")
	}
}

func TestDataLinkIgnoresAnchorsOutsideHeading(t *testing.T) {
	page := `<Head></Head><Body>
<p><a href="/other.html">nav</a></p>
<h2>done <a href="/tmp_dat/out.dat">data</a></h2>
</Body>`
	href, err := dataLink(strings.NewReader(page))
	if err != nil {
		t.Fatalf("dataLink returned error: %v", err)
	}
	if href != "/tmp_dat/out.dat" {
		t.Errorf("href = %q, want the anchor inside the heading", href)
	}
}

func TestDataLinkMissing(t *testing.T) {
	_, err := dataLink(strings.NewReader("<Head></Head><Body><h2>no link</h2></Body>"))
	if !errors.Is(err, ErrErrorPage) {
		t.Fatalf("got err %v, want ErrErrorPage", err)
	}
}

func TestParseTable(t *testing.T) {
	// The second data row here is deliberately corrupt.
	corrupt := ` Si Rho=2.33, Sig=0.nm, P=1, 2.degrees
  Energy (eV), Reflectivity, Transmission
   30.000  0.88799  1.01092E-02
   40.000  0.86038  **OVERFLOW**
`
	clean := ` Si Rho=2.33, Sig=0.nm, P=1, 2.degrees
  Energy (eV), Reflectivity, Transmission
   30.000  0.88799  1.01092E-02
   40.000  0.86038  2.31851E-02
   50.000  0.83405  3.82123E-02
`
	table, err := parseTable(strings.NewReader(clean))
	if err != nil {
		t.Fatalf("parseTable returned error: %v", err)
	}
	if len(table) != 3 {
		t.Fatalf("got %d rows, want 3", len(table))
	}
	if table[0].X != 30 || table[0].Reflectivity != 0.88799 {
		t.Errorf("first row = %+v", table[0])
	}
	if table[2].Transmission != 3.82123e-02 {
		t.Errorf("last transmission = %g", table[2].Transmission)
	}

	if _, err := parseTable(strings.NewReader(corrupt)); !errors.Is(err, ErrErrorPage) {
		t.Errorf("malformed row: got err %v, want ErrErrorPage", err)
	}
}

func TestParseTableRejectsNonNumeric(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"headers only", "line one\nline two\n"},
		{"html masquerading", "<html>\n<body>\nError: bad formula\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseTable(strings.NewReader(tt.body)); !errors.Is(err, ErrErrorPage) {
				t.Errorf("got err %v, want ErrErrorPage", err)
			}
		})
	}
}
