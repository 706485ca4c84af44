// Copyright (C) 2026 NTM Sim Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/ntmsim/ntmsim/engine"
	"github.com/ntmsim/ntmsim/parser"
)

// decide runs desc (a full tr/acc/max/run program) end to end through the
// parser and engine, returning the verdict lines in order.
func decide(t *testing.T, desc string) []string {
	t.Helper()
	m, runs, err := parser.Parse(strings.NewReader(desc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	eng := engine.New(m.Table, m.MaxSteps, nil)
	var got []string
	for _, in := range runs {
		got = append(got, eng.Run(context.Background(), in).String())
	}
	return got
}

func TestEndToEndScenarios(t *testing.T) {
	cases := []struct {
		name string
		desc string
		want []string
	}{
		{
			name: "S1 deterministic accept",
			desc: "tr\n0 a a R 1\n1 b b R 2\nacc\n2\nmax\n10\nrun\nab\n",
			want: []string{"1"},
		},
		{
			name: "S2 deterministic reject by halt",
			desc: "tr\n0 a a R 1\n1 b b R 2\nacc\n2\nmax\n10\nrun\nac\n",
			want: []string{"0"},
		},
		{
			name: "S3 preemption",
			desc: "tr\n0 a a R 0\nacc\nmax\n3\nrun\naaaaaa\n",
			want: []string{"U"},
		},
		{
			name: "S4 nondeterministic accept",
			desc: "tr\n0 a b R 0\n0 a a R 1\n1 _ _ S 2\nacc\n2\nmax\n100\nrun\na\n",
			want: []string{"1"},
		},
		{
			name: "S5 empty input immediate accept",
			desc: "tr\n0 _ _ S 1\nacc\n1\nmax\n5\nrun\n\n",
			want: []string{"1"},
		},
		{
			name: "multiple run lines decided independently",
			desc: "tr\n0 a a R 1\n1 b b R 2\nacc\n2\nmax\n10\nrun\nab\nac\nab\n",
			want: []string{"1", "0", "1"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := decide(t, c.desc)
			if len(got) != len(c.want) {
				t.Fatalf("got %v, want %v", got, c.want)
			}
			for i := range c.want {
				if got[i] != c.want[i] {
					t.Errorf("run %d: got %q, want %q", i, got[i], c.want[i])
				}
			}
		})
	}
}

func TestRunWritesOneVerdictPerLine(t *testing.T) {
	desc := "tr\n0 a a R 1\n1 b b R 2\nacc\n2\nmax\n10\nrun\nab\nac\n"
	f, err := os.CreateTemp(t.TempDir(), "ntmsim-*.txt")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	if _, err := f.WriteString(desc); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	f.Close()

	oldF, oldV := dashf, dashv
	dashf, dashv = f.Name(), false
	defer func() { dashf, dashv = oldF, oldV }()

	var stdout, stderr bytes.Buffer
	if err := run(&stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr should be empty without -v: %q", stderr.String())
	}
	want := "1\n0\n"
	if stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
}
