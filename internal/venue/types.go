package venue

import (
	"strconv"
	"strings"
)

// TriState is a yes/no answer or flag that may also be unknown.
type TriState int

const (
	Unknown TriState = iota
	Yes
	No
)

// Labels used in the dataset and in replies.
const (
	LabelYes     = "ใช่"
	LabelNo      = "ไม่ใช่"
	LabelUnknown = "ไม่ทราบ"
)

// ParseTriState reads a dataset label. Anything that is not yes or no is Unknown.
func ParseTriState(label string) TriState {
	switch strings.TrimSpace(label) {
	case LabelYes:
		return Yes
	case LabelNo:
		return No
	default:
		return Unknown
	}
}

func (t TriState) String() string {
	switch t {
	case Yes:
		return LabelYes
	case No:
		return LabelNo
	default:
		return LabelUnknown
	}
}

// Column labels, in dataset order.
const (
	ColRank         = "อันดับ"
	ColName         = "ชื่อร้าน"
	ColCoordinates  = "พิกัด"
	ColAddress      = "ที่อยู่"
	ColOpeningHours = "เวลาทำการ"
	ColContact      = "ช่องทางติดต่อ"
	ColWebsite      = "เว็บไซต์"
	ColOpenLate     = "เปิดหลังเที่ยงคืน"
	ColHasParking   = "มีที่จอดรถ"
)

// Venue is one scraped hangout. Values are never modified after loading.
type Venue struct {
	Rank         int
	Name         string
	Coordinates  string
	Address      string
	OpeningHours string
	Contact      string
	Website      string
	HasParking   TriState
	OpenLate     TriState
}

// Field is one column of a projected venue.
type Field struct {
	Key   string
	Value string
}

// Record is a projected venue with its columns in dataset order.
type Record []Field

// Get returns the value of a column, if the record has it.
func (r Record) Get(key string) (string, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

func (v Venue) fields() Record {
	return Record{
		{Key: ColRank, Value: strconv.Itoa(v.Rank)},
		{Key: ColName, Value: v.Name},
		{Key: ColCoordinates, Value: v.Coordinates},
		{Key: ColAddress, Value: v.Address},
		{Key: ColOpeningHours, Value: v.OpeningHours},
		{Key: ColContact, Value: v.Contact},
		{Key: ColWebsite, Value: v.Website},
		{Key: ColOpenLate, Value: v.OpenLate.String()},
		{Key: ColHasParking, Value: v.HasParking.String()},
	}
}
