package model

// Student is a member of the class roster. Points never go below zero.
type Student struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}
