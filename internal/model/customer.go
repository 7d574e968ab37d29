package model

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	CustomerNumberLength = 5
	NameMaxLength        = 100
)

// CustomerNumber identifies a customer. It is always exactly five characters.
type CustomerNumber string

func ParseCustomerNumber(s string) (CustomerNumber, error) {
	if strings.TrimSpace(s) == "" || utf8.RuneCountInString(s) != CustomerNumberLength {
		return "", ErrInvalidCustomerNumber
	}
	return CustomerNumber(s), nil
}

// NewCustomerNumber takes the first five characters of a random UUID.
func NewCustomerNumber() CustomerNumber {
	return CustomerNumber(strings.ToUpper(uuid.NewString()[:CustomerNumberLength]))
}

func (n CustomerNumber) String() string { return string(n) }

type Customer struct {
	Number    CustomerNumber
	FirstName string
	LastName  string
}

// NewCustomer trims the names and requires both to be present.
func NewCustomer(number CustomerNumber, firstName, lastName string) (*Customer, error) {
	if _, err := ParseCustomerNumber(string(number)); err != nil {
		return nil, err
	}

	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" ||
		utf8.RuneCountInString(firstName) > NameMaxLength ||
		utf8.RuneCountInString(lastName) > NameMaxLength {
		return nil, ErrCustomerNameIncomplete
	}

	return &Customer{
		Number:    number,
		FirstName: firstName,
		LastName:  lastName,
	}, nil
}

func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
