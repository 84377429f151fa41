// internal/kana/kana.go
//
// Static classification tables for the hiragana syllabary.
// Responsibilities:
//   - Collapse voiced (が), semi-voiced (ぱ) and small (っ) forms onto a base kana.
//   - Assign each base kana a row (行) and a column (段).
//   - Report whether two kana are variants of one another.
//
// Notes:
//   - Tables are built once at package init and never mutated.
//   - ん and ー are their own base and belong to no row or column.
//   - Unknown runes degrade to "own base, no row, no column".
package kana

// Group identifies a row or column by its head kana (e.g. 'か' row, 'い' column).
type Group rune

// NoGroup is returned alongside ok=false when a kana has no row or column.
const NoGroup Group = 0

var baseOf = map[rune]rune{
	'が': 'か', 'ぎ': 'き', 'ぐ': 'く', 'げ': 'け', 'ご': 'こ',
	'ざ': 'さ', 'じ': 'し', 'ず': 'す', 'ぜ': 'せ', 'ぞ': 'そ',
	'だ': 'た', 'ぢ': 'ち', 'づ': 'つ', 'で': 'て', 'ど': 'と',
	'ば': 'は', 'び': 'ひ', 'ぶ': 'ふ', 'べ': 'へ', 'ぼ': 'ほ',
	'ぱ': 'は', 'ぴ': 'ひ', 'ぷ': 'ふ', 'ぺ': 'へ', 'ぽ': 'ほ',
	'ぁ': 'あ', 'ぃ': 'い', 'ぅ': 'う', 'ぇ': 'え', 'ぉ': 'お',
	'ゃ': 'や', 'ゅ': 'ゆ', 'ょ': 'よ',
	'っ': 'つ',
	'ゎ': 'わ', 'ゕ': 'か', 'ゖ': 'け',
}

// rows and columns list the 46 base kana (ん and ー excluded) by group head.
var rows = map[Group]string{
	'あ': "あいうえお",
	'か': "かきくけこ",
	'さ': "さしすせそ",
	'た': "たちつてと",
	'な': "なにぬねの",
	'は': "はひふへほ",
	'ま': "まみむめも",
	'や': "やゆよ",
	'ら': "らりるれろ",
	'わ': "わを",
}

var columns = map[Group]string{
	'あ': "あかさたなはまやらわ",
	'い': "いきしちにひみり",
	'う': "うくすつぬふむゆる",
	'え': "えけせてねへめれ",
	'お': "おこそとのほもよろを",
}

var (
	rowOf    = invert(rows)
	columnOf = invert(columns)
)

func invert(groups map[Group]string) map[rune]Group {
	out := make(map[rune]Group)
	for g, members := range groups {
		for _, r := range members {
			out[r] = g
		}
	}
	return out
}

// Base returns the canonical form of r, or r itself when it has no variant entry.
func Base(r rune) rune {
	if b, ok := baseOf[r]; ok {
		return b
	}
	return r
}

// Row returns the row (行) of r's base form.
func Row(r rune) (Group, bool) {
	g, ok := rowOf[Base(r)]
	return g, ok
}

// Column returns the column (段) of r's base form.
func Column(r rune) (Group, bool) {
	g, ok := columnOf[Base(r)]
	return g, ok
}

// IsVariant reports whether a and b differ but share a base form.
func IsVariant(a, b rune) bool {
	return a != b && Base(a) == Base(b)
}

// SameRow reports whether a and b both have a row and it is the same one.
func SameRow(a, b rune) bool {
	ra, okA := Row(a)
	rb, okB := Row(b)
	return okA && okB && ra == rb
}

// SameColumn reports whether a and b both have a column and it is the same one.
func SameColumn(a, b rune) bool {
	ca, okA := Column(a)
	cb, okB := Column(b)
	return okA && okB && ca == cb
}

// Known reports whether r appears anywhere in the tables (including ん and ー).
func Known(r rune) bool {
	if r == 'ん' || r == 'ー' {
		return true
	}
	if _, ok := baseOf[r]; ok {
		return true
	}
	_, ok := rowOf[r]
	return ok
}
