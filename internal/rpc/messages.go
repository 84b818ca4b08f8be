package rpc

import (
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

type Empty struct{}

func (*Empty) Marshal() ([]byte, error) { return nil, nil }

func (*Empty) Unmarshal(b []byte) error {
	return decodeFields(b, func(protowire.Number, protowire.Type, []byte) (int, error) { return 0, nil })
}

type User struct {
	Name  string
	Email string
}

func (m *User) Marshal() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.Name)
	b = appendString(b, 2, m.Email)
	return b, nil
}

func (m *User) Unmarshal(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Name)
		case 2:
			return consumeString(typ, b, &m.Email)
		}
		return 0, nil
	})
}

type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

func (m *RegisterRequest) Marshal() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.Name)
	b = appendString(b, 2, m.Email)
	b = appendString(b, 3, m.Password)
	return b, nil
}

func (m *RegisterRequest) Unmarshal(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Name)
		case 2:
			return consumeString(typ, b, &m.Email)
		case 3:
			return consumeString(typ, b, &m.Password)
		}
		return 0, nil
	})
}

type LoginRequest struct {
	Email    string
	Password string
}

func (m *LoginRequest) Marshal() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.Email)
	b = appendString(b, 2, m.Password)
	return b, nil
}

func (m *LoginRequest) Unmarshal(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Email)
		case 2:
			return consumeString(typ, b, &m.Password)
		}
		return 0, nil
	})
}

// AuthResponse answers Register and Login.
type AuthResponse struct {
	Token string
	User  *User
}

func (m *AuthResponse) Marshal() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.Token)
	if m.User != nil {
		return appendMessage(b, 2, m.User)
	}
	return b, nil
}

func (m *AuthResponse) Unmarshal(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Token)
		case 2:
			m.User = &User{}
			return consumeMessage(typ, b, m.User)
		}
		return 0, nil
	})
}

type ListSlotsRequest struct {
	Date string
}

func (m *ListSlotsRequest) Marshal() ([]byte, error) {
	return appendString(nil, 1, m.Date), nil
}

func (m *ListSlotsRequest) Unmarshal(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(typ, b, &m.Date)
		}
		return 0, nil
	})
}

type Slot struct {
	Time      string
	Available bool
}

func (m *Slot) Marshal() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.Time)
	b = appendBool(b, 2, m.Available)
	return b, nil
}

func (m *Slot) Unmarshal(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Time)
		case 2:
			return consumeBool(typ, b, &m.Available)
		}
		return 0, nil
	})
}

type ListSlotsResponse struct {
	Date  string
	Slots []*Slot
}

func (m *ListSlotsResponse) Marshal() ([]byte, error) {
	b := appendString(nil, 1, m.Date)
	var err error
	for _, s := range m.Slots {
		if b, err = appendMessage(b, 2, s); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (m *ListSlotsResponse) Unmarshal(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Date)
		case 2:
			s := &Slot{}
			m.Slots = append(m.Slots, s)
			return consumeMessage(typ, b, s)
		}
		return 0, nil
	})
}

type BookRequest struct {
	Date  string
	Time  string
	Name  string
	Phone string
}

func (m *BookRequest) Marshal() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.Date)
	b = appendString(b, 2, m.Time)
	b = appendString(b, 3, m.Name)
	b = appendString(b, 4, m.Phone)
	return b, nil
}

func (m *BookRequest) Unmarshal(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Date)
		case 2:
			return consumeString(typ, b, &m.Time)
		case 3:
			return consumeString(typ, b, &m.Name)
		case 4:
			return consumeString(typ, b, &m.Phone)
		}
		return 0, nil
	})
}

type Appointment struct {
	ID        string
	UserEmail string
	Name      string
	Phone     string
	Date      string
	Time      string
	CreatedAt time.Time
	// Status is upcoming or past; empty on a fresh booking.
	Status string
}

func (m *Appointment) Marshal() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.UserEmail)
	b = appendString(b, 3, m.Name)
	b = appendString(b, 4, m.Phone)
	b = appendString(b, 5, m.Date)
	b = appendString(b, 6, m.Time)
	b, err := appendTime(b, 7, m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return appendString(b, 8, m.Status), nil
}

func (m *Appointment) Unmarshal(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.ID)
		case 2:
			return consumeString(typ, b, &m.UserEmail)
		case 3:
			return consumeString(typ, b, &m.Name)
		case 4:
			return consumeString(typ, b, &m.Phone)
		case 5:
			return consumeString(typ, b, &m.Date)
		case 6:
			return consumeString(typ, b, &m.Time)
		case 7:
			return consumeTime(typ, b, &m.CreatedAt)
		case 8:
			return consumeString(typ, b, &m.Status)
		}
		return 0, nil
	})
}

type BookResponse struct {
	Appointment *Appointment
}

func (m *BookResponse) Marshal() ([]byte, error) {
	if m.Appointment == nil {
		return nil, nil
	}
	return appendMessage(nil, 1, m.Appointment)
}

func (m *BookResponse) Unmarshal(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			m.Appointment = &Appointment{}
			return consumeMessage(typ, b, m.Appointment)
		}
		return 0, nil
	})
}

type HistoryRequest struct {
	Search string
	Status string
}

func (m *HistoryRequest) Marshal() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.Search)
	b = appendString(b, 2, m.Status)
	return b, nil
}

func (m *HistoryRequest) Unmarshal(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Search)
		case 2:
			return consumeString(typ, b, &m.Status)
		}
		return 0, nil
	})
}

// AppointmentList answers Upcoming and History.
type AppointmentList struct {
	Appointments []*Appointment
}

func (m *AppointmentList) Marshal() ([]byte, error) {
	var b []byte
	var err error
	for _, a := range m.Appointments {
		if b, err = appendMessage(b, 1, a); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (m *AppointmentList) Unmarshal(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			a := &Appointment{}
			m.Appointments = append(m.Appointments, a)
			return consumeMessage(typ, b, a)
		}
		return 0, nil
	})
}

type Quote struct {
	Text   string
	Author string
}

func (m *Quote) Marshal() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.Text)
	b = appendString(b, 2, m.Author)
	return b, nil
}

func (m *Quote) Unmarshal(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Text)
		case 2:
			return consumeString(typ, b, &m.Author)
		}
		return 0, nil
	})
}

type ArticlesRequest struct {
	Page  int32
	Limit int32
}

func (m *ArticlesRequest) Marshal() ([]byte, error) {
	var b []byte
	b = appendInt32(b, 1, m.Page)
	b = appendInt32(b, 2, m.Limit)
	return b, nil
}

func (m *ArticlesRequest) Unmarshal(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeInt32(typ, b, &m.Page)
		case 2:
			return consumeInt32(typ, b, &m.Limit)
		}
		return 0, nil
	})
}

type Article struct {
	Title string
	Body  string
}

func (m *Article) Marshal() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.Title)
	b = appendString(b, 2, m.Body)
	return b, nil
}

func (m *Article) Unmarshal(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Title)
		case 2:
			return consumeString(typ, b, &m.Body)
		}
		return 0, nil
	})
}

type ArticlesResponse struct {
	Items []*Article
	Total int32
}

func (m *ArticlesResponse) Marshal() ([]byte, error) {
	var b []byte
	var err error
	for _, a := range m.Items {
		if b, err = appendMessage(b, 1, a); err != nil {
			return nil, err
		}
	}
	return appendInt32(b, 2, m.Total), nil
}

func (m *ArticlesResponse) Unmarshal(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			a := &Article{}
			m.Items = append(m.Items, a)
			return consumeMessage(typ, b, a)
		case 2:
			return consumeInt32(typ, b, &m.Total)
		}
		return 0, nil
	})
}
