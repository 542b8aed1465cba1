package main

import (
	"reflect"
	"testing"
)

func TestSplitCLIArgs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"wizard launch", nil, nil},
		{"program flags only", []string{"-version"}, nil},
		{"bare command", []string{"history"}, []string{"history"}},
		{
			"subcommand flags survive",
			[]string{"history", "-n", "5"},
			[]string{"history", "-n", "5"},
		},
		{
			"flags after positional arguments survive",
			[]string{"download", "000000042 FE F", "-face", "back"},
			[]string{"download", "000000042 FE F", "-face", "back"},
		},
		{
			"leading program flag is skipped",
			[]string{"-help", "download", "000000042 FE F", "-orientation", "v"},
			[]string{"download", "000000042 FE F", "-orientation", "v"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitCLIArgs(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitCLIArgs(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
