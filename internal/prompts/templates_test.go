package prompts

import (
	"strings"
	"testing"

	"github.com/avvvet/hangoutbot/internal/venue"
	"github.com/stretchr/testify/assert"
)

func rec(fields ...string) venue.Record {
	var r venue.Record
	for i := 0; i+1 < len(fields); i += 2 {
		r = append(r, venue.Field{Key: fields[i], Value: fields[i+1]})
	}
	return r
}

func TestGreeting(t *testing.T) {
	got := Greeting("สวัสดี")
	assert.Equal(t, "สวัสดีถามบอทน้อยเกี่ยวกับ (ร้านแฮงค์เอาท์ใกล้จตุจักร)หรือ(ร้านเหล้าแนะนำ) ได้เลยนะ !🍻", got)
	assert.Contains(t, got, "ร้านแฮงค์เอาท์ใกล้จตุจักร")
	assert.Contains(t, got, "ร้านเหล้าแนะนำ")
}

func TestHangoutInfo(t *testing.T) {
	assert.Equal(t,
		"ร้านเหล้าหน้าตาเป็นยังไงหากพูดถึงร้านแฮงค์เอาท์บริเวณนี้บอทน้อยขอแนะนำให้ค้นหาว่า ร้านเหล้าใกล้จตุจักร หรือ ร้านแนะนำ",
		HangoutInfo("ร้านเหล้าหน้าตาเป็นยังไง"))
}

func TestListing(t *testing.T) {
	got := Listing([]venue.Record{
		rec(venue.ColName, "Attic"),
		rec(venue.ColName, "Balcony"),
	})

	want := "บอทน้อยขอแนะนำ นี้คือรายชื่อร้านที่ดีที่สุดทั้งหมด \n\n" +
		"ร้านที่ 1 : Attic\n" +
		"ร้านที่ 2 : Balcony\n" +
		"คุณสามารถถามรายละเอียดเพิ่มเติมได้เช่น ร้านแนะนำ ร้านเหล้าแนะนำ"
	assert.Equal(t, want, got)
}

func TestRanking(t *testing.T) {
	got := Ranking([]venue.Record{
		rec(venue.ColRank, "1", venue.ColName, "Attic"),
		rec(venue.ColRank, "3", venue.ColName, "Cellar"),
		rec(venue.ColName, "Deck"),
	})

	want := "🏆 Top ร้านแฮงค์เอาท์:\n\n" +
		"อันดับที่ 1 : Attic\n" +
		"อันดับที่ 3 : Cellar\n" +
		"อันดับที่ 3 : Deck\n" +
		"\n" +
		"คุณสามารถถามรายละเอียดเพิ่มเติมได้เช่น ร้านแนะนำ ร้านเหล้าแนะนำ"
	assert.Equal(t, want, got)
}

func TestDetail(t *testing.T) {
	got := Detail([]venue.Record{
		rec(venue.ColName, "Attic", venue.ColAddress, "ซอย 1"),
		rec(venue.ColName, "Balcony", venue.ColAddress, "ซอย 2"),
	})

	want := "บอทน้อยขอแนะนำ นี้คือรายละเอียดและชื่อร้าน \n\n" +
		"ชื่อร้าน : Attic\nที่อยู่ : ซอย 1\n\n" +
		"ชื่อร้าน : Balcony\nที่อยู่ : ซอย 2\n\n" +
		"คุณสามารถถามรายละเอียดเพิ่มเติมได้เช่น ร้านแนะนำ ร้านเหล้าแนะนำ"
	assert.Equal(t, want, got)
}

func TestRecommendation(t *testing.T) {
	got := Recommendation([]venue.Record{
		rec(venue.ColName, "Attic", venue.ColOpeningHours, "18:00-02:00"),
	})

	want := "บอทน้อยขอแนะนำร้านแฮงค์เอาท์ใกล้จตุจักรที่คุณต้องการ (^_^)\n\n" +
		"ร้านที่ : 1\n" +
		"ชื่อร้าน : Attic\n" +
		"เวลาทำการ : 18:00-02:00\n" +
		"\n" +
		"ขอบคุณที่สอบถามกับบอทน้อย😙 คุณสามารถสอบถามเกี่ยวกับร้านเหล้าได้เพิ่มเติมนะแล้วไว้เจอกันใหม่สวัสดีจ้าา!"
	assert.Equal(t, want, got)
	assert.True(t, strings.HasSuffix(got, ThanksText))
}

func TestRecommendationEmpty(t *testing.T) {
	want := "บอทน้อยพบว่าร้านที่คุณต้องการไม่มีอยู่ในสมองอันชาญฉลาดของบอทน้อย\n\nกรุณาค้นหา ร้านแนะนำ ใหม่อีกครั้ง"
	assert.Equal(t, want, Recommendation(nil))
	assert.Equal(t, want, Recommendation([]venue.Record{}))
}

func TestUnknown(t *testing.T) {
	assert.Equal(t,
		"พยากรณ์อากาศ บอทน้อยไม่เข้าใจ😭กรุณาถามบอทน้อยอีกครั้งเช่น ร้านเหล้าใกล้จตุจักร ร้านเหล้า",
		Unknown("พยากรณ์อากาศ"))
}

func TestFixedTexts(t *testing.T) {
	assert.Equal(t, "บอทน้อยไม่เข้าใจ (T_T) กรุณาถามบอทน้อยอีกครั้งเช่น ร้านเหล้าใกล้จตุจักร ร้านเหล้า", NoMatchText)
	assert.Contains(t, NoMatchText, "ร้านเหล้าใกล้จตุจักร")
	assert.Equal(t, "บอทน้อยสงสัยว่า คุณต้องการ(รายละเอียดร้าน)หรือ(รายชื่อร้าน)?", LocationText)
	assert.Equal(t, "🌃 ต้องการร้านเปิดหลังเที่ยงคืนไหม (ต้องการ, ไม่ต้องการ)", AskLateText)
	assert.Equal(t, "🚗 ต้องการที่จอดรถไหม (ต้องการ, ไม่ต้องการ)", AskParkingText)
	assert.Equal(t, "📞 ต้องการช่องทางการติดต่อไหม (ต้องการ, ไม่ต้องการ)", AskContactText)
	assert.Equal(t, "[คุณยกเลิกการแนะนำร้านแล้ว!]บอทน้อยเข้าใจว่าคุณใจโลเลไม่รักจริง😳🔥 \n\nแต่คุณยังสามารถสอบถาม(ร้านเหล้าแนะนำ)หรือ(ร้านเหล้าใกล้จตุจักร)ได้น้าา!!", CancelledText)
	assert.Equal(t, "😫บอทน้อยพบว่าคุณใส่ความต้องการมากเกินไป กรุณาถามบอทน้อยอีกครั้งเช่น ร้านเหล้าใกล้จตุจักร ร้านเหล้า", OverflowText)
	assert.Equal(t, "บอทน้อยไม่เข้าใจ 🤔", NotUnderstoodText)
	assert.Equal(t, "ขออภัยครับ ไม่มีข้อมูลร้านในระบบ", NoDataText)
}
