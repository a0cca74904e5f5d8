package modelio

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/probcheck/bitset"
)

// ReadLabels parses the label text format: one line per label,
// "label-name state-index state-index …". n fixes the state count
// every produced bitset.BitSet is sized to; a referenced state index
// outside [0, n) fails with ErrLabelStateOutOfRange.
func ReadLabels(r io.Reader, n int) (map[string]*bitset.BitSet, error) {
	labels := make(map[string]*bitset.BitSet)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("modelio: label line %q: %w", line, ErrMalformedLabelLine)
		}
		name := fields[0]
		set := bitset.New(n)
		for _, f := range fields[1:] {
			idx, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("modelio: label line %q: %w", line, ErrMalformedLabelLine)
			}
			if idx < 0 || idx >= n {
				return nil, fmt.Errorf("modelio: label %q state %d: %w", name, idx, ErrLabelStateOutOfRange)
			}
			set.Set(idx)
		}
		labels[name] = set
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return labels, nil
}

// WriteLabels writes labels back out in the label text format, one
// line per label sorted by name for deterministic output.
func WriteLabels(w io.Writer, labels map[string]*bitset.BitSet) error {
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	sort.Strings(names)

	bw := bufio.NewWriter(w)
	for _, name := range names {
		var sb strings.Builder
		sb.WriteString(name)
		labels[name].Each(func(i int) {
			sb.WriteByte(' ')
			sb.WriteString(strconv.Itoa(i))
		})
		if _, err := fmt.Fprintln(bw, sb.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
