package main

import (
	"flag"
	"testing"
)

func TestFlagSetDetectsExplicitZeroSeed(t *testing.T) {
	fs := flag.NewFlagSet("consolidate", flag.ContinueOnError)
	seed := fs.Int64("seed", 0, "")
	if err := fs.Parse([]string{"-seed", "0"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !flagSet(fs, "seed") {
		t.Fatal("expected -seed 0 to count as set")
	}
	if *seed != 0 {
		t.Fatalf("expected seed 0, got %d", *seed)
	}
}

func TestFlagSetOmittedSeed(t *testing.T) {
	fs := flag.NewFlagSet("consolidate", flag.ContinueOnError)
	fs.Int64("seed", 0, "")
	fs.String("solver", "", "")
	if err := fs.Parse([]string{"-solver", "parallel"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if flagSet(fs, "seed") {
		t.Fatal("expected omitted -seed to be unset")
	}
}
