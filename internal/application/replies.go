package application

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf16"

	"github.com/tozahudud/binbot/internal/domain"
)

// Free-text limits in UTF-16 code units. Together with the fixed markup they
// keep every reply under Telegram's 4096-unit message limit.
const (
	maxFieldUnits      = 256
	maxNotesUnits      = 1500
	maxSuggestionUnits = 1000
)

const (
	unknownValue = "Noma'lum"

	replyWelcome = "Assalomu alaykum!\n\n" +
		"Konteynerni aniqlash uchun QR kodni skaner qiling yoki /scan komandasini yuboring.\n" +
		"Konteyner ID sini yoki havolasini to'g'ridan-to'g'ri yuborishingiz ham mumkin."

	replyScanInstructions = "📸 QR kodni skaner qilish uchun kamerangizdan foydalaning.\n\n" +
		"1. QR kodga kamerangizni yo'naltiring\n" +
		"2. Havolani oching yoki uni shu yerga yuboring\n" +
		"3. Bot avtomatik ravishda konteynerni aniqlaydi\n" +
		"4. Konteyner rasmini yuboring"

	replyHelp = "🤖 <b>Toza hudud bot yordami</b>\n\n" +
		"🔗 <b>QR kod orqali kirish:</b>\n" +
		"• Har bir konteynerga maxsus QR kod berilgan\n" +
		"• QR kodni skaner qiling yoki ID ni yuboring\n\n" +
		"📷 <b>Rasm yuborish:</b>\n" +
		"• Konteyner aniqlangandan keyin rasm yuboring\n" +
		"• Bot AI yordamida rasmni tahlil qiladi\n\n" +
		"📋 <b>Komandalar:</b>\n" +
		"/start - Botni ishga tushirish\n" +
		"/scan - QR kod skaner qilish bo'yicha ko'rsatma\n" +
		"/help - Yordam ko'rsatish"

	replyGuidance = "Iltimos, QR kodni skaner qiling yoki konteyner ID sini kiriting.\n" +
		"QR kodni skaner qilish uchun kamerangizdan foydalaning va QR kodga yo'naltiring."

	replyScanFirst = "Kechirasiz, konteyner ID sini aniqlay olmadik.\n" +
		"Iltimos, QR kodni skaner qiling yoki /scan komandasini bosing."

	replyAnalysing = "🔍 Rasm qabul qilindi, tahlil qilinmoqda..."

	replyNotWasteContainer = "Bu rasmda chiqindi konteyneri aniqlanmadi. Iltimos, konteyner rasmini yuboring."

	replyTryLater = "Kechirasiz, tizimga ulanib bo'lmadi. Iltimos, keyinroq qayta urinib ko'ring."

	replyRetry = "Kechirasiz, konteyner ma'lumotlarini yangilay olmadik. Iltimos, qayta urinib ko'ring."

	replyPhotoFailed = "Kechirasiz, rasmni yuklab bo'lmadi. Iltimos, rasmni qayta yuboring."
)

func notFoundReply(id domain.BinID) string {
	return "Kechirasiz, bunday ID li konteyner topilmadi: " + html.EscapeString(clipText(id.String(), maxFieldUnits))
}

func snapshotReply(snapshot domain.BinSnapshot) string {
	var b strings.Builder
	b.WriteString("📦 <b>Konteyner ma'lumotlari:</b>\n\n")
	fmt.Fprintf(&b, "📍 <b>Manzil:</b> %s\n", orUnknown(snapshot.Address))
	fmt.Fprintf(&b, "🏷️ <b>ID:</b> %s\n", orUnknown(snapshot.ID.String()))
	fmt.Fprintf(&b, "📊 <b>To'ldirish darajasi:</b> %d%%\n", snapshot.FillLevelPercent)
	fmt.Fprintf(&b, "🚦 <b>Status:</b> %s\n", fullLabel(snapshot.IsFull, "Bo'sh"))
	fmt.Fprintf(&b, "🏢 <b>Toza hudud:</b> %s\n\n", orUnknown(snapshot.ZoneName))
	b.WriteString("📷 Rasm yuboring iltimos! AI tizimi konteynerni tahlil qiladi.\n")
	b.WriteString("Eslatma: agar konteyner to'la bo'lsa, tizim avtomatik ravishda xabarnoma yuboradi.")
	return b.String()
}

func analysisReply(bin domain.AnalyzedBin) string {
	verdict := bin.Verdict

	var b strings.Builder
	b.WriteString("✅ Rasm qabul qilindi va tahlil qilindi!\n\n")
	fmt.Fprintf(&b, "📦 <b>Konteyner:</b> %s\n", orUnknown(bin.Snapshot.Address))
	fmt.Fprintf(&b, "🚦 <b>Yangi status:</b> %s\n", fullLabel(verdict.IsFull, "To'lmagan"))
	fmt.Fprintf(&b, "📊 <b>To'ldirish darajasi:</b> %d%%\n", verdict.FillLevelPercent)
	fmt.Fprintf(&b, "🔍 <b>AI ishonchlilik:</b> %d%%\n\n", verdict.ConfidencePercent)
	if notes := strings.TrimSpace(verdict.Notes); notes != "" {
		fmt.Fprintf(&b, "📝 <b>Tahlil:</b> %s\n", html.EscapeString(clipText(notes, maxNotesUnits)))
	}
	if suggestions := strings.TrimSpace(verdict.Suggestions); suggestions != "" {
		fmt.Fprintf(&b, "💡 <b>Tavsiya:</b> %s\n", html.EscapeString(clipText(suggestions, maxSuggestionUnits)))
	}
	b.WriteString("\nKo'rsatmalar bo'yicha tashakkur!")
	return b.String()
}

func orUnknown(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return unknownValue
	}
	return html.EscapeString(clipText(value, maxFieldUnits))
}

// clipText cuts raw text to at most limit UTF-16 code units, ending with an
// ellipsis when shortened. It runs before escaping so no entity is split.
func clipText(text string, limit int) string {
	if len(utf16.Encode([]rune(text))) <= limit {
		return text
	}

	var b strings.Builder
	units := 0
	for _, r := range text {
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		if units+n > limit-1 {
			break
		}
		b.WriteRune(r)
		units += n
	}
	b.WriteString("…")
	return b.String()
}

func fullLabel(full bool, otherwise string) string {
	if full {
		return "To'la"
	}
	return otherwise
}
