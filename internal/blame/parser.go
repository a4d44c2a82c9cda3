package blame

import (
	"strconv"
	"strings"
	"time"
)

// meta is the metadata block git prints the first time a commit shows up
// in a porcelain stream. Later lines of the same commit repeat only the
// header, so parsed blocks are kept in a Cache and reused.
type meta struct {
	author        string
	authorMail    string
	authorTime    time.Time
	authorTZ      string
	committer     string
	committerMail string
	committerTime time.Time
	committerTZ   string
	summary       string
	previous      string
	filename      string
}

// Cache holds per-commit metadata collected during a parse pass. git
// prints the full block once per commit per blame run, so a fresh cache
// is needed for every run.
type Cache map[string]*meta

// NewCache returns an empty metadata cache for one parse pass.
func NewCache() Cache {
	return make(Cache)
}

// Parse turns raw `git blame --porcelain` output into one Record per
// blamed line, in file order. Metadata for repeated commits is taken
// from the cache. A trailing header without its content line is dropped
// rather than emitted as a partial record.
func Parse(lines []string, cache Cache) []Record {
	var records []Record

	i := 0
	for i < len(lines) {
		id, orig, final, ok := parseHeader(lines[i])
		if !ok {
			i++
			continue
		}
		i++

		m := cache[id]
		if m == nil {
			m = &meta{}
			cache[id] = m
		}

		// Consume metadata lines until the tab-prefixed content line.
		// A new header or end of input means the entry is truncated.
		content := ""
		complete := false
		for i < len(lines) {
			line := lines[i]
			if strings.HasPrefix(line, "\t") {
				content = line[1:]
				complete = true
				i++
				break
			}
			if _, _, _, isHeader := parseHeader(line); isHeader {
				break
			}
			applyMetaLine(m, line)
			i++
		}
		if !complete {
			continue
		}

		commit := id
		if isZeroID(id) {
			commit = ""
		}
		records = append(records, Record{
			Commit:        commit,
			Author:        m.author,
			AuthorMail:    m.authorMail,
			AuthorTime:    m.authorTime,
			AuthorTZ:      m.authorTZ,
			Committer:     m.committer,
			CommitterMail: m.committerMail,
			CommitterTime: m.committerTime,
			CommitterTZ:   m.committerTZ,
			Summary:       m.summary,
			Previous:      m.previous,
			Filename:      m.filename,
			OrigLine:      orig,
			FinalLine:     final,
			Content:       content,
		})
	}

	return records
}

// parseHeader matches `<40-hex-id> <origLine> <finalLine> [<hunkSize>]`.
func parseHeader(line string) (id string, orig, final int, ok bool) {
	fields := strings.Fields(line)
	if len(fields) != 3 && len(fields) != 4 {
		return "", 0, 0, false
	}
	if !isHexID(fields[0]) {
		return "", 0, 0, false
	}
	orig, err := strconv.Atoi(fields[1])
	if err != nil {
		return "", 0, 0, false
	}
	final, err = strconv.Atoi(fields[2])
	if err != nil {
		return "", 0, 0, false
	}
	if len(fields) == 4 {
		if _, err := strconv.Atoi(fields[3]); err != nil {
			return "", 0, 0, false
		}
	}
	return fields[0], orig, final, true
}

func isHexID(s string) bool {
	if len(s) != 40 {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func applyMetaLine(m *meta, line string) {
	key, value, _ := strings.Cut(line, " ")
	switch key {
	case "author":
		m.author = value
	case "author-mail":
		m.authorMail = strings.Trim(value, "<>")
	case "author-time":
		m.authorTime = parseUnixTime(value)
	case "author-tz":
		m.authorTZ = value
	case "committer":
		m.committer = value
	case "committer-mail":
		m.committerMail = strings.Trim(value, "<>")
	case "committer-time":
		m.committerTime = parseUnixTime(value)
	case "committer-tz":
		m.committerTZ = value
	case "summary":
		m.summary = value
	case "previous":
		// `previous <id> <filename>`; only the revision is kept.
		m.previous, _, _ = strings.Cut(value, " ")
	case "filename":
		m.filename = value
	}
}

func parseUnixTime(value string) time.Time {
	sec, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}
