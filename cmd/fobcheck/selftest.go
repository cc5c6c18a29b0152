package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kbukum/fobstore/storage"
)

const (
	sampleBinary  = "How quickly daft jumping zebras vex"
	sampleText    = "The quick brown fox jumps over a lazy dog"
	unicodeSample = "ā <- abreve, ć <- c acute, ũ <- u tilde"

	testLimit = 10
)

// sampleItems are uploaded in this order; text items carry their content.
var sampleItems = []struct {
	name string
	text string
}{
	{name: "AAA-TEST.bin"},
	{name: "AAA-TEST.txt", text: sampleText},
	{name: "BBB-TEST.bin"},
	{name: "BBB-TEST.txt", text: unicodeSample},
	{name: "CCC-TEST.bin"},
	{name: "CCC-TEST.txt", text: sampleText},
}

// billKeySamples are printed after the scratch run.
var billKeySamples = []struct {
	state   string
	bill    string
	session int
	year    int
}{
	{"AZ", "HB1", 1234, 2016},
	{"AZ", "SB22", 1234, 2017},
	{"AZ", "HRJ333", 1234, 2018},
	{"AZ", "SRC4444", 1234, 2019},
}

// selfTest exercises a FOB end to end. Every item it writes starts with
// prefix so a live root is left as it was found.
type selfTest struct {
	fob    *storage.FOB
	prefix string
	out    io.Writer
	failed []string
}

func newSelfTest(fob *storage.FOB, prefix string, out io.Writer) *selfTest {
	return &selfTest{fob: fob, prefix: prefix, out: out}
}

func (s *selfTest) name(n string) string { return s.prefix + n }

// run uploads the samples, prints the listing permutations, and checks
// fidelity, existence and removal. It returns an error naming every failed
// check.
func (s *selfTest) run(ctx context.Context) error {
	for _, item := range sampleItems {
		var r storage.Result
		if item.text == "" {
			r = s.fob.UploadBinary(ctx, []byte(sampleBinary), s.name(item.name))
		} else {
			r = s.fob.UploadText(ctx, item.text, s.name(item.name), "")
		}
		s.check(r.OK(), "upload %s: %s", item.name, r.Status)
	}

	s.listing(ctx, "List all items:", storage.ListOptions{}, 6)
	s.listing(ctx, "Limit=3:", storage.ListOptions{Limit: 3}, 3)
	s.listing(ctx, "Prefix='BBB':", storage.ListOptions{Prefix: "BBB", Limit: testLimit}, 2)
	s.listing(ctx, "Suffix='.bin':", storage.ListOptions{Suffix: ".bin", Limit: testLimit}, 3)
	s.listing(ctx, "Prefix='B' and Suffix='.bin':", storage.ListOptions{Prefix: "B", Suffix: ".bin", Limit: testLimit}, 1)
	s.listing(ctx, "After='AAA-TEST.txt':", storage.ListOptions{After: s.name("AAA-TEST.txt"), Limit: testLimit}, 4)
	s.listing(ctx, "After='AAB-TEST.txt' Limit=3:", storage.ListOptions{After: s.name("AAB-TEST.txt"), Limit: 3}, 3)

	fmt.Fprintln(s.out, "Download binary:")
	data := s.fob.DownloadBinary(ctx, s.name("AAA-TEST.bin"))
	fmt.Fprintf(s.out, "%q\n", data)
	s.check(bytes.Equal(data, []byte(sampleBinary)), "binary data does not match")

	fmt.Fprintln(s.out, "Download text:")
	for _, item := range []struct{ name, want string }{
		{"BBB-TEST.txt", unicodeSample},
		{"CCC-TEST.txt", sampleText},
	} {
		text := s.fob.DownloadText(ctx, s.name(item.name), "")
		fmt.Fprintf(s.out, "=[%s]=\n", text)
		s.check(text == item.want, "text data of %s does not match", item.name)
	}

	fmt.Fprintln(s.out, "Test if BBB-TEST.txt exists")
	exists := s.fob.Exists(ctx, s.name("BBB-TEST.txt"))
	if exists {
		fmt.Fprintln(s.out, "--- BBB-TEST.txt exists!")
	} else {
		fmt.Fprintln(s.out, "Not found: BBB-TEST.txt")
	}
	s.check(exists, "BBB-TEST.txt should exist")

	fmt.Fprintln(s.out, "Delete existing item BBB-TEST.txt:")
	r := s.fob.Remove(ctx, s.name("BBB-TEST.txt"))
	s.check(r.OK(), "remove BBB-TEST.txt: %s", r.Status)
	s.listing(ctx, "", storage.ListOptions{Limit: testLimit}, 5)
	s.check(!s.fob.Exists(ctx, s.name("BBB-TEST.txt")), "BBB-TEST.txt should be gone")

	fmt.Fprintln(s.out, "Delete non-existent item ZZZ-TEST.unk:")
	r = s.fob.Remove(ctx, s.name("ZZZ-TEST.unk"))
	s.check(r.OK(), "remove ZZZ-TEST.unk: %s", r.Status)
	s.listing(ctx, "", storage.ListOptions{Limit: testLimit}, 5)

	if len(s.failed) > 0 {
		return fmt.Errorf("self-test: %d checks failed: %s", len(s.failed), strings.Join(s.failed, "; "))
	}
	return nil
}

// listing prints one listing relative to the scratch prefix and checks its size.
func (s *selfTest) listing(ctx context.Context, title string, opts storage.ListOptions, want int) {
	opts.Prefix = s.prefix + opts.Prefix
	names := s.fob.List(ctx, opts)
	if title != "" {
		fmt.Fprintln(s.out, title)
	}
	shown := make([]string, len(names))
	for i, n := range names {
		shown[i] = strings.TrimPrefix(n, s.prefix)
	}
	fmt.Fprintln(s.out, shown)
	s.check(len(names) == want, "%s got %d items, want %d", strings.TrimSuffix(title, ":"), len(names), want)
}

// cleanup removes every scratch item, including ones a failed run left behind.
func (s *selfTest) cleanup(ctx context.Context) error {
	var failed []string
	for _, name := range s.fob.List(ctx, storage.ListOptions{Prefix: s.prefix}) {
		if r := s.fob.Remove(ctx, name); !r.OK() {
			failed = append(failed, name)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("self-test cleanup: could not remove %v", failed)
	}
	return nil
}

// printBillKeys prints the bill text key for each sample bill.
func printBillKeys(fob *storage.FOB, out io.Writer) {
	for _, b := range billKeySamples {
		fmt.Fprintln(out, fob.BillTextKey(b.state, b.bill, b.session, b.year))
	}
}

func (s *selfTest) check(ok bool, format string, args ...interface{}) {
	if ok {
		return
	}
	msg := fmt.Sprintf(format, args...)
	s.failed = append(s.failed, msg)
	fmt.Fprintln(s.out, "Error, "+msg)
}
