// Package predicate is the store-agnostic filter language the search
// service emits. Stores translate an Expr into their native query form.
package predicate

import "time"

// Field names a searchable or sortable job attribute.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldIndustry    Field = "industry"
	FieldCity        Field = "location.city"
	FieldRegion      Field = "location.region"
	FieldJobType     Field = "jobType"
	FieldExperience  Field = "experience"
	FieldSalaryMin   Field = "salary.min"
	FieldSalaryMax   Field = "salary.max"
	FieldDeadline    Field = "deadline"
	FieldCreatedAt   Field = "createdAt"
	FieldViews       Field = "views"
)

// Op is a numeric comparison operator.
type Op string

const (
	OpGte Op = ">="
	OpLte Op = "<="
)

// Expr is one node of a predicate tree.
type Expr interface {
	expr()
}

// Eq requires an exact match on a text field.
type Eq struct {
	Field Field
	Value string
}

// In requires a text field to equal one of Values.
type In struct {
	Field  Field
	Values []string
}

// Contains is a case-insensitive substring match.
type Contains struct {
	Field Field
	Term  string
}

// Compare holds a numeric bound on Field.
type Compare struct {
	Field Field
	Op    Op
	Value float64
}

// After requires a time field strictly later than Time.
type After struct {
	Field Field
	Time  time.Time
}

// And is a conjunction. An empty And matches everything.
type And struct {
	Terms []Expr
}

// Or is a disjunction. An empty Or matches nothing.
type Or struct {
	Terms []Expr
}

func (Eq) expr()       {}
func (In) expr()       {}
func (Contains) expr() {}
func (Compare) expr()  {}
func (After) expr()    {}
func (And) expr()      {}
func (Or) expr()       {}

// Sort is a resolved field and direction.
type Sort struct {
	Field Field
	Desc  bool
}
