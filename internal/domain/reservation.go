package domain

import "time"

// Header of the reservations sheet. Order and spelling must stay stable so
// files written by earlier runs keep loading.
var Columns = []string{
	"Nom", "Prenom", "Telephone", "Ville", "Profession",
	"CNI", "Prix_Chambre", "Nb_Jours", "Date_Arrivee",
	"Montant_Total", "Date_Reservation",
}

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// Form options.
var RoomPrices = []int64{7000, 8000, 10000, 12000}

const (
	MinStayDays = 1
	MaxStayDays = 365
	Currency    = "FCFA"
	RecentLimit = 5
)

type Reservation struct {
	LastName    string
	FirstName   string
	Phone       string
	City        string
	Profession  string
	NationalID  string
	RoomPrice   int64
	StayDays    int
	ArrivalDate time.Time // date only
	TotalAmount int64
	RecordedAt  time.Time
}

func ValidRoomPrice(p int64) bool {
	for _, rp := range RoomPrices {
		if rp == p {
			return true
		}
	}
	return false
}

// TotalAmount is the amount due for a stay. No rounding, taxes or discounts.
func TotalAmount(roomPrice int64, stayDays int) int64 {
	return roomPrice * int64(stayDays)
}

// Dataset is the full ordered content of a store. Records are never updated
// or removed, only appended.
type Dataset struct {
	Records []Reservation
}

func (d Dataset) Len() int { return len(d.Records) }

// Append returns a new dataset with r as the last record. The receiver's
// backing array is never written to.
func (d Dataset) Append(r Reservation) Dataset {
	out := make([]Reservation, len(d.Records), len(d.Records)+1)
	copy(out, d.Records)
	return Dataset{Records: append(out, r)}
}

// Tail returns up to n of the most recent records, oldest first.
func (d Dataset) Tail(n int) []Reservation {
	if n <= 0 || len(d.Records) == 0 {
		return nil
	}
	if n > len(d.Records) {
		n = len(d.Records)
	}
	out := make([]Reservation, n)
	copy(out, d.Records[len(d.Records)-n:])
	return out
}

func (d Dataset) Revenue() int64 {
	var sum int64
	for _, r := range d.Records {
		sum += r.TotalAmount
	}
	return sum
}

type Summary struct {
	Count   int
	Revenue int64
}

type RecentPage struct {
	Items []Reservation
	Empty bool
}

type Quote struct {
	RoomPrice   int64
	StayDays    int
	TotalAmount int64
}
