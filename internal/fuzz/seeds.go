package fuzztests

import (
	"testing"
)

const maxSeedBytes = 64 << 10

var phpSeeds = []string{
	"",
	"<?php\n",
	"<html><?= $title ?></html>",
	"<?php echo \"a {$b->c} ${d} $e[0]\";",
	"<?php $x = <<<EOT\n  line $a\n  EOT;\n",
	"<?php $y = <<<'N'\nraw $text\nN;\n",
	"<?php # comment ?>\ntext",
	"<?php /** doc */ final class A { public static function &f(int ...$a): ?int {} }",
	"<?php namespace N { use A\\B as C; function f() use ($x) {} }",
	"<?php $a = [1, [2, 3], 'k' => (int) $v ?? 0x1F + 0b101 + 1_000.5e-3];",
	"<?php #[Attr(1)] enum Suit: string { case Hearts = 'H'; }",
	"<?php 'unterminated",
	"<?php /* unterminated",
	"<?php \"{$open",
	"<?php \x00\x01\xff",
}

func addSeeds(f *testing.F) {
	for _, s := range phpSeeds {
		f.Add([]byte(s))
	}
}

func clampSeed(b []byte) []byte {
	if len(b) > maxSeedBytes {
		b = b[:maxSeedBytes]
	}
	return append([]byte(nil), b...)
}
