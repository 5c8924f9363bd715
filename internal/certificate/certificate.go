package certificate

import (
	"bytes"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

// MaxUploadBytes caps certificate uploads.
const MaxUploadBytes = 5 << 20

// ErrNotPDF means the upload lacks the %PDF- magic bytes.
var ErrNotPDF = errors.New("certificate: not a PDF")

// ExtractText returns the plain text of every page, separated by spaces.
func ExtractText(data []byte) (string, error) {
	if http.DetectContentType(data) != "application/pdf" {
		return "", ErrNotPDF
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString(" ")
	}
	return sb.String(), nil
}

var (
	markers = []string{"婚姻の届出日", "婚姻日", "届出日", "受理日", "婚姻", "受理"}

	reEra       = regexp.MustCompile(`(令和|平成)\s*(元|\d{1,2})\s*年\s*(\d{1,2})\s*月\s*(\d{1,2})\s*日`)
	reKanjiDate = regexp.MustCompile(`(\d{4})\s*年\s*(\d{1,2})\s*月\s*(\d{1,2})\s*日`)
	reNumDate   = regexp.MustCompile(`(\d{4})[/\-.](\d{1,2})[/\-.](\d{1,2})`)

	eraBase = map[string]int{"令和": 2018, "平成": 1988}

	fullWidth = strings.NewReplacer(
		"０", "0", "１", "1", "２", "2", "３", "3", "４", "4",
		"５", "5", "６", "6", "７", "7", "８", "8", "９", "9",
		"／", "/", "－", "-", "　", " ",
	)
)

// window is how many bytes after a marker are searched for a date.
const window = 120

// ExtractMarriageDate finds the registration date in certificate text.
// A date shortly after a marker wins; otherwise the first date in the text.
func ExtractMarriageDate(text string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	text = fullWidth.Replace(text)

	for _, m := range markers {
		idx := strings.Index(text, m)
		for idx >= 0 {
			seg := text[idx+len(m):]
			if len(seg) > window {
				seg = seg[:window]
			}
			if t, ok := firstDate(seg, loc); ok {
				return t, true
			}
			next := strings.Index(text[idx+len(m):], m)
			if next < 0 {
				break
			}
			idx += len(m) + next
		}
	}
	return firstDate(text, loc)
}

// firstDate returns the earliest valid date in s across all formats.
func firstDate(s string, loc *time.Location) (time.Time, bool) {
	best := -1
	var found time.Time

	consider := func(pos, y, m, d int) {
		t, ok := makeDate(y, m, d, loc)
		if ok && (best < 0 || pos < best) {
			best, found = pos, t
		}
	}

	for _, mm := range reEra.FindAllStringSubmatchIndex(s, -1) {
		era := s[mm[2]:mm[3]]
		n := 1
		if yr := s[mm[4]:mm[5]]; yr != "元" {
			n, _ = strconv.Atoi(yr)
		}
		consider(mm[0], eraBase[era]+n, atoi(s[mm[6]:mm[7]]), atoi(s[mm[8]:mm[9]]))
	}
	for _, re := range []*regexp.Regexp{reKanjiDate, reNumDate} {
		for _, mm := range re.FindAllStringSubmatchIndex(s, -1) {
			consider(mm[0], atoi(s[mm[2]:mm[3]]), atoi(s[mm[4]:mm[5]]), atoi(s[mm[6]:mm[7]]))
		}
	}
	return found, best >= 0
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// makeDate rejects dates that time.Date would normalise (2月30日 etc).
func makeDate(y, m, d int, loc *time.Location) (time.Time, bool) {
	if y < 1900 || m < 1 || m > 12 || d < 1 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, loc)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}
