package textparse

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// CorpusCase is one reading exercise from a corpus file.
//
// A corpus file holds blank-line separated blocks of `key: value` lines:
//
//	type: Maybe Int
//	input: Just (-5)
//	want: Just (-5)
//
// want is the canonical rendering of the value read; rest, when present,
// is the expected unread remainder. A case expecting failure names a
// substring of the message with error and may add fatal: true or false.
type CorpusCase struct {
	File  string
	Line  int
	Type  string
	Input string
	Want  *string
	Rest  *string
	Error *string
	Fatal *bool
}

// Name identifies the case in reports.
func (c *CorpusCase) Name() string {
	return fmt.Sprintf("%s:%d", filepath.Base(c.File), c.Line)
}

// CorpusOutcome is what reading a case's input produced.
type CorpusOutcome struct {
	Shown string
	Rest  string
	Err   error
}

// Run reads the case's input as its type.
func (c *CorpusCase) Run() (CorpusOutcome, error) {
	d, err := Lookup(c.Type)
	if err != nil {
		return CorpusOutcome{}, err
	}
	v, rest, err := Read(d.Reader, c.Input)
	if err != nil {
		return CorpusOutcome{Err: err, Rest: rest}, nil
	}
	return CorpusOutcome{Shown: Show(d.Shower, v), Rest: rest}, nil
}

// Verify compares an outcome with the case's expectations.
func (c *CorpusCase) Verify(o CorpusOutcome) error {
	if c.Error != nil {
		if o.Err == nil {
			return fmt.Errorf("expected failure containing %q, read %s", *c.Error, o.Shown)
		}
		if !strings.Contains(o.Err.Error(), *c.Error) {
			return fmt.Errorf("failure %q does not contain %q", o.Err, *c.Error)
		}
		if c.Fatal != nil && IsFatal(o.Err) != *c.Fatal {
			return fmt.Errorf("failure fatal=%t, want %t: %v", IsFatal(o.Err), *c.Fatal, o.Err)
		}
		return nil
	}
	if o.Err != nil {
		return fmt.Errorf("unexpected failure: %v", o.Err)
	}
	if c.Want != nil && o.Shown != *c.Want {
		return fmt.Errorf("read %s, want %s", o.Shown, *c.Want)
	}
	if c.Rest != nil && strings.TrimSpace(o.Rest) != strings.TrimSpace(*c.Rest) {
		return fmt.Errorf("left %q unread, want %q", o.Rest, *c.Rest)
	}
	return nil
}

// LoadCorpus reads every *.lit file below root, in path order.
func LoadCorpus(root string) ([]*CorpusCase, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".lit") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var cases []*CorpusCase
	for _, path := range files {
		cs, err := loadCorpusFile(path)
		if err != nil {
			return nil, err
		}
		cases = append(cases, cs...)
	}
	return cases, nil
}

func loadCorpusFile(path string) ([]*CorpusCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		cases []*CorpusCase
		cur   *CorpusCase
		line  int
	)
	flush := func() error {
		if cur == nil {
			return nil
		}
		if cur.Type == "" {
			return fmt.Errorf("%s:%d: case has no type", path, cur.Line)
		}
		cases = append(cases, cur)
		cur = nil
		return nil
	}

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		if strings.HasPrefix(text, "#") {
			continue
		}
		key, value, ok := strings.Cut(text, ":")
		if !ok {
			return nil, fmt.Errorf("%s:%d: expected key: value", path, line)
		}
		value = strings.TrimPrefix(value, " ")
		if cur == nil {
			cur = &CorpusCase{File: path, Line: line}
		}
		switch key {
		case "type":
			cur.Type = value
		case "input":
			cur.Input = value
		case "want":
			cur.Want = &value
		case "rest":
			cur.Rest = &value
		case "error":
			cur.Error = &value
		case "fatal":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %v", path, line, err)
			}
			cur.Fatal = &b
		default:
			return nil, fmt.Errorf("%s:%d: unknown key %q", path, line, key)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return cases, nil
}
