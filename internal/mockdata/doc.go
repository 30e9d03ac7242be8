// Package mockdata generates synthetic survey responses for an event.
//
// Records are numbered sequentially (Student 1, student1@example.com, BWU0001)
// and receive distinct response timestamps between one and ten days after the
// event, during the 10:00-17:59 window. Ratings are uniform on the 2..5 range.
package mockdata
