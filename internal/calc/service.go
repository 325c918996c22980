// Package calc provides the stateless calculation API. It has no
// dependency on the room core; every operation is a pure function over
// its inputs.
package calc

import "errors"

// ErrDivideByZero is returned by Operations when y is zero.
var ErrDivideByZero = errors.New("divide by zero")

// Vector is a three-component float vector.
type Vector struct {
	X float64
	Y float64
	Z float64
}

// Service performs stateless calculations.
type Service struct{}

// NewService constructs the calculation service.
func NewService() *Service {
	return &Service{}
}

// Mul returns the product of x and y.
func (s *Service) Mul(x, y int64) int64 {
	return x * y
}

// Sum returns the sum of all values.
func (s *Service) Sum(values []int64) int64 {
	var total int64
	for _, v := range values {
		total += v
	}
	return total
}

// Operations returns the four basic operations applied to x and y, in
// the order add, subtract, multiply, divide.
func (s *Service) Operations(x, y int64) ([4]int64, error) {
	if y == 0 {
		return [4]int64{}, ErrDivideByZero
	}
	return [4]int64{x + y, x - y, x * y, x / y}, nil
}

// VectorSum returns the sum of the vector's components.
func (s *Service) VectorSum(v Vector) float64 {
	return v.X + v.Y + v.Z
}
