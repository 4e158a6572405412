package customs

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAttributes renders the recognized attributes for display.
func FormatAttributes(attrs *VehicleAttributes) string {
	if attrs == nil || attrs.Empty() {
		return ""
	}

	var b strings.Builder
	b.WriteString("🚗 <b>Распознано:</b>\n")
	if attrs.Brand != nil {
		name := *attrs.Brand
		if attrs.Model != nil {
			name += " " + *attrs.Model
		}
		fmt.Fprintf(&b, "• Авто: %s\n", name)
	}
	if attrs.Year != nil {
		fmt.Fprintf(&b, "• Год: %d\n", *attrs.Year)
	}
	if attrs.EngineLiters != nil {
		fmt.Fprintf(&b, "• Объем: %.1f л\n", *attrs.EngineLiters)
	}
	if attrs.PowerHP != nil {
		fmt.Fprintf(&b, "• Мощность: %d л.с.\n", *attrs.PowerHP)
	}
	if attrs.PriceUSD != nil {
		fmt.Fprintf(&b, "• Цена: %s$\n", groupDigits(fmt.Sprintf("%d", *attrs.PriceUSD)))
	}
	if attrs.MileageKm != nil {
		fmt.Fprintf(&b, "• Пробег: %s км\n", groupDigits(fmt.Sprintf("%d", *attrs.MileageKm)))
	}
	return b.String()
}

// FormatBreakdown renders a duty breakdown as user-facing text.
func FormatBreakdown(d *DutyBreakdown) string {
	if d == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("📌 <b>Расчет растаможки:</b>\n")
	fmt.Fprintf(&b, "- Пошлина: %s ₽\n", FormatRub(d.CustomsDuty))
	fmt.Fprintf(&b, "- Акциз: %s ₽\n", FormatRub(d.Excise))
	fmt.Fprintf(&b, "- НДС: %s ₽\n", FormatRub(d.VAT))
	fmt.Fprintf(&b, "- Утильсбор: %s ₽\n", FormatRub(d.RecyclingFee))
	fmt.Fprintf(&b, "- Доп. расходы: %s ₽\n", FormatRub(d.AdditionalCosts))
	if d.ServiceCosts.IsPositive() {
		fmt.Fprintf(&b, "- Услуги: %s ₽\n", FormatRub(d.ServiceCosts))
	}
	fmt.Fprintf(&b, "\n💵 <b>Итого: %s ₽</b>", FormatRub(d.Total))
	return b.String()
}

// FormatSnapshot renders a market snapshot as user-facing text.
// A sparse snapshot renders only the sections that were parsed.
func FormatSnapshot(s *MarketSnapshot) string {
	if s == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("📊 <b>Рынок:</b>\n")
	if s.AdCount > 0 {
		fmt.Fprintf(&b, "Объявлений: %d\n", s.AdCount)
	}
	if s.PriceMin != nil && s.PriceMax != nil {
		fmt.Fprintf(&b, "Цены: %s – %s ₽\n",
			groupDigits(fmt.Sprintf("%d", *s.PriceMin)),
			groupDigits(fmt.Sprintf("%d", *s.PriceMax)))
	}
	if s.PriceAvg != nil {
		fmt.Fprintf(&b, "Средняя: %s ₽\n", groupDigits(fmt.Sprintf("%d", *s.PriceAvg)))
	}
	for i, l := range s.Listings {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, l.Title)
		if l.Price > 0 {
			fmt.Fprintf(&b, "   Цена: %s ₽\n", groupDigits(fmt.Sprintf("%d", l.Price)))
		}
		if l.Year != nil {
			fmt.Fprintf(&b, "   Год: %d\n", *l.Year)
		}
		if l.MileageKm != nil {
			fmt.Fprintf(&b, "   Пробег: %s км\n", groupDigits(fmt.Sprintf("%d", *l.MileageKm)))
		}
		if l.URL != "" {
			fmt.Fprintf(&b, "   %s\n", l.URL)
		}
	}
	if s.SourceURL != "" {
		fmt.Fprintf(&b, "\nИсточник: %s", s.SourceURL)
	}
	return b.String()
}

// FormatRub renders a ruble amount rounded to whole rubles with
// space-grouped thousands.
func FormatRub(d decimal.Decimal) string {
	return groupDigits(d.Round(0).String())
}

// groupDigits inserts spaces as thousands separators into a decimal
// integer string (sign preserved).
func groupDigits(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
