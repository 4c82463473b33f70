// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package parser

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/tomtom215/showfinder/internal/models"
)

// Field names reported in ParsedEvent.Missing.
const (
	FieldName    = "name"
	FieldDate    = "date"
	FieldVenue   = "venue_name"
	FieldAddress = "address"
	FieldCity    = "city"
	FieldState   = "state"
	FieldHours   = "hours"
)

// removed spans are replaced by a separator so neighbouring text does not
// merge into one segment.
const spanMarker = " | "

var (
	separatorRe = regexp.MustCompile(`\s+-\s+|\s*[–—|,;]\s*`)

	hoursRe = regexp.MustCompile(`(?i)\(\s*(\d{1,2})(?::([0-5]\d))?\s*([ap])?\.?m?\.?\s*(?:-|–|—|to)\s*(\d{1,2})(?::([0-5]\d))?\s*([ap])?\.?m?\.?\s*\)`)

	dateRe = regexp.MustCompile(`(?i)\b(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+(\d{1,2})(?:st|nd|rd|th)?\b(?:,?\s+(\d{4})\b)?`)

	addressRe = regexp.MustCompile(`(?i)\b\d{1,6}(?:\s+[NSEW]\.?)?(?:\s+[A-Za-z0-9.'-]+){1,5}?\s+(?:Drive|Dr|Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Way|Parkway|Pkwy|Highway|Hwy|Court|Ct|Place|Pl|Circle|Cir|Pike|Trail|Trl|Terrace|Ter|Square|Sq)\b\.?`)

	cityStateRe = regexp.MustCompile(`\b([A-Z][A-Za-z.'-]*(?:\s+[A-Z][A-Za-z.'-]*){0,2}),\s*([A-Z]{2}|[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\b`)
)

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// ParsedEvent is the best-effort result of parsing one listing.
type ParsedEvent struct {
	Raw       string             `json:"raw"`
	Name      string             `json:"name,omitempty"`
	Date      models.PartialDate `json:"date"`
	VenueName string             `json:"venue_name,omitempty"`
	Address   string             `json:"address,omitempty"`
	City      string             `json:"city,omitempty"`
	State     string             `json:"state,omitempty"`
	Hours     string             `json:"hours,omitempty"`
	Missing   []string           `json:"missing,omitempty"`
}

// Record converts the parse into an EventRecord. StartDate is only set when
// the listing carried a year.
func (p *ParsedEvent) Record() models.EventRecord {
	rec := models.EventRecord{
		Name:      p.Name,
		VenueName: p.VenueName,
		Address:   p.Address,
		City:      p.City,
		State:     p.State,
		Hours:     p.Hours,
	}
	if p.Date.HasYear() {
		if t, ok := p.Date.In(p.Date.Year); ok {
			rec.StartDate = t
		}
	}
	return rec
}

// Parser extracts fields from listing text. A Parser is immutable after
// construction and safe for concurrent use.
type Parser struct {
	cities  []knownCity
	venueRe *regexp.Regexp
}

type knownCity struct {
	name  string
	state string
	re    *regexp.Regexp
}

// Option customizes a Parser.
type Option func(*options)

type options struct {
	cities map[string]string
	venues []string
}

// WithKnownCities replaces the city table used when no "City, ST" token is present.
func WithKnownCities(cities map[string]string) Option {
	return func(o *options) { o.cities = cities }
}

// WithVenueKeywords replaces the venue keyword list.
func WithVenueKeywords(keywords []string) Option {
	return func(o *options) { o.venues = keywords }
}

// New builds a Parser.
func New(opts ...Option) *Parser {
	o := options{cities: DefaultKnownCities, venues: DefaultVenueKeywords}
	for _, opt := range opts {
		opt(&o)
	}

	p := &Parser{}
	for name, state := range o.cities {
		p.cities = append(p.cities, knownCity{
			name:  name,
			state: state,
			re:    regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`),
		})
	}
	// Longest first so "Kansas City" wins over a shorter overlapping name.
	sort.Slice(p.cities, func(i, j int) bool {
		if len(p.cities[i].name) != len(p.cities[j].name) {
			return len(p.cities[i].name) > len(p.cities[j].name)
		}
		return p.cities[i].name < p.cities[j].name
	})

	if len(o.venues) > 0 {
		venues := append([]string(nil), o.venues...)
		sort.Slice(venues, func(i, j int) bool { return len(venues[i]) > len(venues[j]) })
		quoted := make([]string, len(venues))
		for i, v := range venues {
			quoted[i] = regexp.QuoteMeta(v)
		}
		p.venueRe = regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
	}
	return p
}

var defaultParser = New()

// ParseEventText parses raw with the default tables and returns the record.
func ParseEventText(raw string) models.EventRecord {
	parsed := defaultParser.Parse(raw)
	return parsed.Record()
}

// Parse extracts as many fields as it can from raw.
func (p *Parser) Parse(raw string) ParsedEvent {
	out := ParsedEvent{Raw: raw}
	text := raw

	if loc := hoursRe.FindStringSubmatchIndex(text); loc != nil {
		if hours, ok := normalizeHours(submatches(text, loc)); ok {
			out.Hours = hours
		}
		text = cut(text, loc[0], loc[1])
	}

	if loc := dateRe.FindStringSubmatchIndex(text); loc != nil {
		if d, ok := parseDate(submatches(text, loc)); ok {
			out.Date = d
			text = cut(text, loc[0], loc[1])
		}
	}

	if loc := addressRe.FindStringIndex(text); loc != nil {
		out.Address = cleanSegment(text[loc[0]:loc[1]])
		text = cut(text, loc[0], loc[1])
	}

	text = p.extractCityState(&out, text)

	segments := splitSegments(text)
	remaining := segments[:0]
	for _, seg := range segments {
		if out.VenueName == "" && p.venueRe != nil && p.venueRe.MatchString(seg) {
			out.VenueName = seg
			continue
		}
		remaining = append(remaining, seg)
	}
	for _, seg := range remaining {
		if isStateToken(seg) || !hasLetter(seg) {
			continue
		}
		out.Name = seg
		break
	}

	out.Missing = missingFields(&out)
	return out
}

func (p *Parser) extractCityState(out *ParsedEvent, text string) string {
	// A rejected state token may itself be the city of the next pair
	// ("Card Show, Louisville, Kentucky"), so resume at the token.
	for offset := 0; offset < len(text); {
		loc := cityStateRe.FindStringSubmatchIndex(text[offset:])
		if loc == nil {
			break
		}
		city := text[offset+loc[2] : offset+loc[3]]
		state, ok := lookupState(text[offset+loc[4] : offset+loc[5]])
		if !ok {
			offset += loc[4]
			continue
		}
		out.City = p.trimToKnownCity(city)
		out.State = state
		return cut(text, offset+loc[0], offset+loc[1])
	}

	best := -1
	var match knownCity
	var span []int
	for _, c := range p.cities {
		loc := c.re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if best == -1 || loc[0] < best {
			best, match, span = loc[0], c, loc
		}
	}
	if span == nil {
		return text
	}
	out.City = match.name
	out.State = match.state
	return cut(text, span[0], span[1])
}

// trimToKnownCity drops leading words captured before a known city name
// ("Annual Show Fort Wayne" becomes "Fort Wayne").
func (p *Parser) trimToKnownCity(city string) string {
	lower := strings.ToLower(city)
	for _, c := range p.cities {
		if strings.HasSuffix(lower, strings.ToLower(c.name)) {
			return city[len(city)-len(c.name):]
		}
	}
	return strings.TrimSpace(city)
}

func lookupState(token string) (string, bool) {
	token = strings.TrimSpace(token)
	if _, ok := usStates[token]; ok {
		return token, true
	}
	candidates := []string{token}
	if i := strings.IndexByte(token, ' '); i > 0 {
		candidates = append(candidates, token[:i])
	}
	for _, cand := range candidates {
		for code, name := range usStates {
			if strings.EqualFold(name, cand) {
				return code, true
			}
		}
	}
	return "", false
}

func parseDate(groups []string) (models.PartialDate, bool) {
	month, ok := months[strings.ToLower(groups[1])[:3]]
	if !ok {
		return models.PartialDate{}, false
	}
	day, err := strconv.Atoi(groups[2])
	if err != nil || day < 1 || day > 31 {
		return models.PartialDate{}, false
	}
	d := models.PartialDate{Month: month, Day: day}
	if groups[3] != "" {
		if year, err := strconv.Atoi(groups[3]); err == nil {
			d.Year = year
		}
	}
	return d, true
}

// normalizeHours renders a parenthesized range as "8am-2pm". Missing am/pm
// markers are inferred: an opening hour of 6 to 11 is morning, anything else
// afternoon, and the closing hour is the first reading later than opening.
func normalizeHours(groups []string) (string, bool) {
	open, err1 := strconv.Atoi(groups[1])
	closeH, err2 := strconv.Atoi(groups[4])
	if err1 != nil || err2 != nil || open > 23 || closeH > 23 {
		return "", false
	}
	openMin, closeMin := atoiOrZero(groups[2]), atoiOrZero(groups[5])
	openSfx, closeSfx := strings.ToLower(groups[3]), strings.ToLower(groups[6])

	var open24, close24 int
	switch {
	case open > 12 || closeH > 12:
		open24, close24 = open, closeH
	case openSfx != "" && closeSfx != "":
		open24, close24 = to24(open, openSfx), to24(closeH, closeSfx)
	case openSfx == "" && closeSfx != "":
		close24 = to24(closeH, closeSfx)
		open24 = to24(open, closeSfx)
		if open24*60+openMin >= close24*60+closeMin {
			open24 = to24(open, "a")
		}
	default:
		if openSfx != "" {
			open24 = to24(open, openSfx)
		} else if open >= 6 && open <= 11 {
			open24 = open
		} else {
			open24 = to24(open, "p")
		}
		close24 = to24(closeH, "a")
		if close24*60+closeMin <= open24*60+openMin {
			close24 = to24(closeH, "p")
		}
	}

	return formatClock(open24, openMin) + "-" + formatClock(close24, closeMin), true
}

func to24(hour int, suffix string) int {
	h := hour % 12
	if suffix == "p" {
		h += 12
	}
	return h
}

func formatClock(hour24, minute int) string {
	suffix := "am"
	if hour24 >= 12 {
		suffix = "pm"
	}
	h := hour24 % 12
	if h == 0 {
		h = 12
	}
	if minute > 0 {
		return strconv.Itoa(h) + ":" + twoDigits(minute) + suffix
	}
	return strconv.Itoa(h) + suffix
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func submatches(text string, loc []int) []string {
	groups := make([]string, len(loc)/2)
	for i := range groups {
		if loc[2*i] >= 0 {
			groups[i] = text[loc[2*i]:loc[2*i+1]]
		}
	}
	return groups
}

func cut(text string, start, end int) string {
	return text[:start] + spanMarker + text[end:]
}

func splitSegments(text string) []string {
	var segments []string
	for _, part := range separatorRe.Split(text, -1) {
		if seg := cleanSegment(part); seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

func cleanSegment(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, " .:-")
}

func isStateToken(s string) bool {
	_, ok := usStates[s]
	return ok
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func missingFields(p *ParsedEvent) []string {
	var missing []string
	check := func(field string, empty bool) {
		if empty {
			missing = append(missing, field)
		}
	}
	check(FieldName, p.Name == "")
	check(FieldDate, p.Date.IsZero())
	check(FieldVenue, p.VenueName == "")
	check(FieldAddress, p.Address == "")
	check(FieldCity, p.City == "")
	check(FieldState, p.State == "")
	check(FieldHours, p.Hours == "")
	return missing
}
