// Package prompts renders every reply the bot sends. The texts are part of
// the contract with users and are pinned by tests.
package prompts

import (
	"fmt"
	"strings"

	"github.com/avvvet/hangoutbot/internal/venue"
)

const (
	greetingSuffix    = "ถามบอทน้อยเกี่ยวกับ (ร้านแฮงค์เอาท์ใกล้จตุจักร)หรือ(ร้านเหล้าแนะนำ) ได้เลยนะ !🍻"
	hangoutInfoSuffix = "หากพูดถึงร้านแฮงค์เอาท์บริเวณนี้บอทน้อยขอแนะนำให้ค้นหาว่า ร้านเหล้าใกล้จตุจักร หรือ ร้านแนะนำ"

	LocationText = "บอทน้อยสงสัยว่า คุณต้องการ(รายละเอียดร้าน)หรือ(รายชื่อร้าน)?"

	listingHeader = "บอทน้อยขอแนะนำ นี้คือรายชื่อร้านที่ดีที่สุดทั้งหมด \n\n"
	rankingHeader = "🏆 Top ร้านแฮงค์เอาท์:\n\n"
	detailHeader  = "บอทน้อยขอแนะนำ นี้คือรายละเอียดและชื่อร้าน \n\n"
	moreFooter    = "คุณสามารถถามรายละเอียดเพิ่มเติมได้เช่น ร้านแนะนำ ร้านเหล้าแนะนำ"

	recommendHeader = "บอทน้อยขอแนะนำร้านแฮงค์เอาท์ใกล้จตุจักรที่คุณต้องการ (^_^)\n\n"
	NoResultsText   = "บอทน้อยพบว่าร้านที่คุณต้องการไม่มีอยู่ในสมองอันชาญฉลาดของบอทน้อย\n\nกรุณาค้นหา ร้านแนะนำ ใหม่อีกครั้ง"

	// ThanksText closes a recommendation and answers a thank-you.
	ThanksText = "ขอบคุณที่สอบถามกับบอทน้อย😙 คุณสามารถสอบถามเกี่ยวกับร้านเหล้าได้เพิ่มเติมนะแล้วไว้เจอกันใหม่สวัสดีจ้าา!"

	AskLateText    = "🌃 ต้องการร้านเปิดหลังเที่ยงคืนไหม (ต้องการ, ไม่ต้องการ)"
	AskParkingText = "🚗 ต้องการที่จอดรถไหม (ต้องการ, ไม่ต้องการ)"
	AskContactText = "📞 ต้องการช่องทางการติดต่อไหม (ต้องการ, ไม่ต้องการ)"

	CancelledText = "[คุณยกเลิกการแนะนำร้านแล้ว!]บอทน้อยเข้าใจว่าคุณใจโลเลไม่รักจริง😳🔥 \n\nแต่คุณยังสามารถสอบถาม(ร้านเหล้าแนะนำ)หรือ(ร้านเหล้าใกล้จตุจักร)ได้น้าา!!"
	OverflowText  = "😫บอทน้อยพบว่าคุณใส่ความต้องการมากเกินไป กรุณาถามบอทน้อยอีกครั้งเช่น ร้านเหล้าใกล้จตุจักร ร้านเหล้า"

	// NoMatchText is sent when the best score is under the scorer's cutoff.
	NoMatchText   = "บอทน้อยไม่เข้าใจ (T_T) กรุณาถามบอทน้อยอีกครั้งเช่น ร้านเหล้าใกล้จตุจักร ร้านเหล้า"
	unknownSuffix = " บอทน้อยไม่เข้าใจ😭กรุณาถามบอทน้อยอีกครั้งเช่น ร้านเหล้าใกล้จตุจักร ร้านเหล้า"

	NotUnderstoodText = "บอทน้อยไม่เข้าใจ 🤔"
	NoDataText        = "ขออภัยครับ ไม่มีข้อมูลร้านในระบบ"

	// ErrorText is what transports send when a request cannot be handled at all.
	ErrorText = "ขออภัยครับ บอทน้อยมีปัญหาชั่วคราว กรุณาลองใหม่อีกครั้ง"
)

// Greeting answers a greeting, starting with the phrase it matched.
func Greeting(matched string) string {
	return matched + greetingSuffix
}

// HangoutInfo answers a general question about the area.
func HangoutInfo(matched string) string {
	return matched + hangoutInfoSuffix
}

// Listing numbers every venue name from 1.
func Listing(records []venue.Record) string {
	var b strings.Builder
	b.WriteString(listingHeader)
	for i, rec := range records {
		name, _ := rec.Get(venue.ColName)
		fmt.Fprintf(&b, "ร้านที่ %d : %s\n", i+1, name)
	}
	b.WriteString(moreFooter)
	return b.String()
}

// Ranking labels each venue with its dataset rank, falling back to its
// position when the record carries none.
func Ranking(records []venue.Record) string {
	var b strings.Builder
	b.WriteString(rankingHeader)
	for i, rec := range records {
		rank, ok := rec.Get(venue.ColRank)
		if !ok {
			rank = fmt.Sprint(i + 1)
		}
		name, _ := rec.Get(venue.ColName)
		fmt.Fprintf(&b, "อันดับที่ %s : %s\n", rank, name)
	}
	b.WriteString("\n")
	b.WriteString(moreFooter)
	return b.String()
}

// Detail dumps every field of every record.
func Detail(records []venue.Record) string {
	var b strings.Builder
	b.WriteString(detailHeader)
	for _, rec := range records {
		writeFields(&b, rec)
		b.WriteString("\n")
	}
	b.WriteString(moreFooter)
	return b.String()
}

// Recommendation renders the filtered venues at the end of the interview.
func Recommendation(records []venue.Record) string {
	if len(records) == 0 {
		return NoResultsText
	}

	var b strings.Builder
	b.WriteString(recommendHeader)
	for i, rec := range records {
		fmt.Fprintf(&b, "ร้านที่ : %d\n", i+1)
		writeFields(&b, rec)
		b.WriteString("\n")
	}
	b.WriteString(ThanksText)
	return b.String()
}

// Unknown echoes input that matched nothing useful.
func Unknown(input string) string {
	return input + unknownSuffix
}

func writeFields(b *strings.Builder, rec venue.Record) {
	for _, f := range rec {
		fmt.Fprintf(b, "%s : %s\n", f.Key, f.Value)
	}
}
