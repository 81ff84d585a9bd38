package cxro

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/ctderoo/reflectivity/internal/scan"
)

// ErrErrorPage reports a response that is not the expected result page,
// typically the service rejecting the request with an HTML error message.
var ErrErrorPage = errors.New("cxro: server returned an error page")

// dataLink walks the result page and returns the href of the first anchor
// inside an <h2>, where the service links the computed data file.
func dataLink(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrErrorPage, err)
	}

	var find func(n *html.Node, inH2 bool) string
	find = func(n *html.Node, inH2 bool) string {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h2":
				inH2 = true
			case "a":
				if inH2 {
					for _, a := range n.Attr {
						if a.Key == "href" && a.Val != "" {
							return a.Val
						}
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if href := find(c, inH2); href != "" {
				return href
			}
		}
		return ""
	}

	href := find(doc, false)
	if href == "" {
		return "", fmt.Errorf("%w: no data link in response", ErrErrorPage)
	}
	return href, nil
}

// parseTable reads the service's plaintext output: two header lines
// followed by whitespace-separated numeric rows of independent variable,
// reflectivity, and transmission.
func parseTable(r io.Reader) (scan.Table, error) {
	sc := bufio.NewScanner(r)
	var out scan.Table
	line := 0
	for sc.Scan() {
		line++
		if line <= 2 {
			continue
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: line %d: %q", ErrErrorPage, line, text)
		}
		var vals [3]float64
		for i := 0; i < len(fields) && i < 3; i++ {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %q", ErrErrorPage, line, text)
			}
			vals[i] = v
		}
		out = append(out, scan.Row{X: vals[0], Reflectivity: vals[1], Transmission: vals[2]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading data file: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty data file", ErrErrorPage)
	}
	return out, nil
}
