package kana

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBase(t *testing.T) {
	tests := []struct {
		in, want rune
	}{
		{'か', 'か'},
		{'が', 'か'},
		{'ぱ', 'は'},
		{'ば', 'は'},
		{'っ', 'つ'},
		{'ゃ', 'や'},
		{'ゎ', 'わ'},
		{'ゖ', 'け'},
		{'ん', 'ん'},
		{'ー', 'ー'},
		{'カ', 'カ'},
		{'x', 'x'},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Base(tt.in), "Base(%q)", tt.in)
	}
}

func TestRowAndColumn(t *testing.T) {
	tests := []struct {
		in      rune
		row     Group
		column  Group
		grouped bool
	}{
		{'い', 'あ', 'い', true},
		{'き', 'か', 'い', true},
		{'ぎ', 'か', 'い', true},
		{'け', 'か', 'え', true},
		{'ぽ', 'は', 'お', true},
		{'ょ', 'や', 'お', true},
		{'っ', 'た', 'う', true},
		{'を', 'わ', 'お', true},
		{'ん', NoGroup, NoGroup, false},
		{'ー', NoGroup, NoGroup, false},
		{'ア', NoGroup, NoGroup, false},
	}
	for _, tt := range tests {
		row, ok := Row(tt.in)
		assert.Equal(t, tt.grouped, ok, "Row(%q) ok", tt.in)
		assert.Equal(t, tt.row, row, "Row(%q)", tt.in)

		col, ok := Column(tt.in)
		assert.Equal(t, tt.grouped, ok, "Column(%q) ok", tt.in)
		assert.Equal(t, tt.column, col, "Column(%q)", tt.in)
	}
}

func TestEveryBaseHasOneRowAndOneColumn(t *testing.T) {
	seen := map[rune]int{}
	for _, members := range rows {
		for _, r := range members {
			seen[r]++
		}
	}
	for _, members := range columns {
		for _, r := range members {
			_, ok := rowOf[r]
			assert.True(t, ok, "column member %q has no row", r)
		}
	}
	for r, n := range seen {
		assert.Equal(t, 1, n, "%q listed in %d rows", r, n)
	}
	assert.Equal(t, len(rowOf), len(columnOf))
}

func TestVariantsShareGroupsWithBase(t *testing.T) {
	for variant, base := range baseOf {
		vr, _ := Row(variant)
		br, _ := Row(base)
		assert.Equal(t, br, vr, "row of %q", variant)
		vc, _ := Column(variant)
		bc, _ := Column(base)
		assert.Equal(t, bc, vc, "column of %q", variant)
	}
}

func TestIsVariant(t *testing.T) {
	assert.True(t, IsVariant('か', 'が'))
	assert.True(t, IsVariant('ば', 'ぱ'))
	assert.True(t, IsVariant('つ', 'っ'))
	assert.False(t, IsVariant('か', 'か'))
	assert.False(t, IsVariant('か', 'き'))
	assert.False(t, IsVariant('ん', 'ー'))
	assert.False(t, IsVariant('カ', 'か'))
}

func TestIsVariantSymmetric(t *testing.T) {
	var all []rune
	for r := range rowOf {
		all = append(all, r)
	}
	for r := range baseOf {
		all = append(all, r)
	}
	all = append(all, 'ん', 'ー', 'ア')
	for _, a := range all {
		for _, b := range all {
			assert.Equal(t, IsVariant(a, b), IsVariant(b, a), "%q/%q", a, b)
		}
		assert.False(t, IsVariant(a, a))
	}
}

func TestSameRowSameColumn(t *testing.T) {
	assert.True(t, SameRow('か', 'ご'))
	assert.False(t, SameRow('か', 'さ'))
	assert.True(t, SameColumn('か', 'さ'))
	assert.False(t, SameColumn('ん', 'ん'))
	assert.False(t, SameRow('ー', 'ー'))
}

func TestKnown(t *testing.T) {
	assert.True(t, Known('あ'))
	assert.True(t, Known('ぢ'))
	assert.True(t, Known('ん'))
	assert.True(t, Known('ー'))
	assert.False(t, Known('ア'))
}
