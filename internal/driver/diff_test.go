package driver

import (
	"strings"
	"testing"
)

func TestUnifiedDiff(t *testing.T) {
	if d, err := UnifiedDiff("x.php", "same\n", "same\n"); err != nil || d != "" {
		t.Fatalf("equal texts: %q, %v", d, err)
	}
	d, err := UnifiedDiff("x.php", "<?php\n$a;\n", "<?php\n$b;\n")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"--- a/x.php", "+++ b/x.php", "-$a;", "+$b;", " <?php"} {
		if !strings.Contains(d, want) {
			t.Fatalf("diff misses %q:\n%s", want, d)
		}
	}
}

func TestColorizeDiffKeepsText(t *testing.T) {
	d := "--- a\n+++ b\n@@ -1 +1 @@\n-x\n+y\n"
	out := ColorizeDiff(d)
	for _, want := range []string{"-x", "+y", "@@ -1 +1 @@"} {
		if !strings.Contains(out, want) {
			t.Fatalf("colorized diff lost %q", want)
		}
	}
}
