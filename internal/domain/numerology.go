package domain

import "time"

// Numerology categories, used as keys into the meaning tables.
const (
	CategoryLifePath    = "life_path"
	CategoryExpression  = "expression"
	CategorySoulUrge    = "soul_urge"
	CategoryPersonality = "personality"
	CategoryBirthDay    = "birth_day"
	CategoryAttitude    = "attitude"
)

// Categories lists the six profile numbers in presentation order.
var Categories = []string{
	CategoryLifePath, CategoryExpression, CategorySoulUrge,
	CategoryPersonality, CategoryBirthDay, CategoryAttitude,
}

// Master numbers are exempt from further reduction.
func isMasterNumber(n int) bool {
	return n == 11 || n == 22 || n == 33
}

func digitSum(n int) int {
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

// Reduce repeatedly replaces n with its decimal digit sum, stopping as soon
// as the value is a single digit or a master number. Reduce(0) is 0.
func Reduce(n int) int {
	for n > 9 && !isMasterNumber(n) {
		n = digitSum(n)
	}
	return n
}

// letterValue maps A..Z through the Pythagorean table, a repeating 1..9
// cycle (A,J,S→1; B,K,T→2; … I,R→9). Non-letters map to 0.
func letterValue(r rune) int {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	if r < 'A' || r > 'Z' {
		return 0
	}
	return int(r-'A')%9 + 1
}

func isVowel(r rune) bool {
	switch r {
	case 'A', 'E', 'I', 'O', 'U', 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

func nameSum(fullName string, keep func(rune) bool) int {
	total := 0
	for _, r := range fullName {
		v := letterValue(r)
		if v == 0 || !keep(r) {
			continue
		}
		total += v
	}
	return total
}

// LifePath reduces the digit sum of the birth date written as MMDDYYYY.
func LifePath(birth time.Time) int {
	total := digitSum(int(birth.Month())) + digitSum(birth.Day()) + digitSum(birth.Year())
	return Reduce(total)
}

// Expression sums every letter of the name. A name with no letters sums to
// 0, which Reduce passes through unchanged.
func Expression(fullName string) int {
	return Reduce(nameSum(fullName, func(rune) bool { return true }))
}

// SoulUrge sums only the vowels of the name.
func SoulUrge(fullName string) int {
	return Reduce(nameSum(fullName, isVowel))
}

// Personality sums only the consonants of the name.
func Personality(fullName string) int {
	return Reduce(nameSum(fullName, func(r rune) bool { return !isVowel(r) }))
}

// BirthDay reduces the day of the month.
func BirthDay(birth time.Time) int {
	return Reduce(birth.Day())
}

// Attitude reduces the digit sum of the zero-padded MMDD concatenation.
func Attitude(birth time.Time) int {
	monthDay := int(birth.Month())*100 + birth.Day()
	return Reduce(digitSum(monthDay))
}

// NumerologyProfile bundles the six profile numbers. Each is a digit 0–9 or
// a master number; reducing any of them again is a no-op.
type NumerologyProfile struct {
	LifePath    int `json:"life_path"`
	Expression  int `json:"expression"`
	SoulUrge    int `json:"soul_urge"`
	Personality int `json:"personality"`
	BirthDay    int `json:"birth_day"`
	Attitude    int `json:"attitude"`
}

// ComputeProfile derives all six numbers from a name and birth date.
func ComputeProfile(fullName string, birth time.Time) NumerologyProfile {
	return NumerologyProfile{
		LifePath:    LifePath(birth),
		Expression:  Expression(fullName),
		SoulUrge:    SoulUrge(fullName),
		Personality: Personality(fullName),
		BirthDay:    BirthDay(birth),
		Attitude:    Attitude(birth),
	}
}

// Number returns the profile value for a category key. The second return is
// false for category strings outside Categories.
func (p NumerologyProfile) Number(category string) (int, bool) {
	switch category {
	case CategoryLifePath:
		return p.LifePath, true
	case CategoryExpression:
		return p.Expression, true
	case CategorySoulUrge:
		return p.SoulUrge, true
	case CategoryPersonality:
		return p.Personality, true
	case CategoryBirthDay:
		return p.BirthDay, true
	case CategoryAttitude:
		return p.Attitude, true
	}
	return 0, false
}
