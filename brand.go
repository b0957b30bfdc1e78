package menuboard

import "strings"

// Brand identifies a coffee chain whose menu is collected.
// The value is the brand name stored in every menu record.
type Brand string

// Supported brands.
const (
	BrandStarbucks Brand = "Starbucks"
	BrandEdiya     Brand = "Ediya"
	BrandGongCha   Brand = "Gong Cha"
)

// Brands returns the supported brands in display order.
func Brands() []Brand {
	return []Brand{BrandStarbucks, BrandEdiya, BrandGongCha}
}

// Slug returns the lowercase identifier used for file names and CLI arguments.
func (b Brand) Slug() string {
	return slugify(string(b))
}

// DisplayName returns the Korean name shown in the kiosk tabs.
func (b Brand) DisplayName() string {
	switch b {
	case BrandStarbucks:
		return "스타벅스"
	case BrandEdiya:
		return "이디야"
	case BrandGongCha:
		return "공차"
	}
	return string(b)
}

// FileName returns the name of the JSON file holding the brand's menu.
func (b Brand) FileName() string {
	return b.Slug() + "_menu.json"
}

// Validate returns an error if b is not a supported brand.
func (b Brand) Validate() error {
	for _, known := range Brands() {
		if b == known {
			return nil
		}
	}
	return Errorf(EINVALID, "unknown brand %q", string(b))
}

// ParseBrand resolves a brand from its name, slug or Korean display name.
// Matching ignores case, spaces, hyphens and underscores.
func ParseBrand(s string) (Brand, error) {
	key := slugify(s)
	if key == "" {
		return "", Errorf(EINVALID, "brand required")
	}
	for _, b := range Brands() {
		if key == b.Slug() || key == slugify(b.DisplayName()) {
			return b, nil
		}
	}
	return "", Errorf(EINVALID, "unknown brand %q", s)
}

func slugify(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '\t':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}
