package model

import "html/template"

// BusinessCard is one business on the listing page, with placeholders applied.
type BusinessCard struct {
	ID      string
	Name    string
	Email   string
	Status  string
	LogoURL string
}

// Pagination is the state of the page-number controls.
type Pagination struct {
	Page       int
	TotalPages int
	HasPrev    bool
	PrevPage   int
	HasNext    bool
	NextPage   int
	Pages      []int
}

// BusinessList is the swappable part of the listing page.
type BusinessList struct {
	Cards      []BusinessCard
	Pagination Pagination
	Error      string
}

// ListPage holds the data for the listing page.
type ListPage struct {
	Page
	List BusinessList
}

// InfoBlock is a labelled value on the detail card.
type InfoBlock struct {
	Label string
	Value string
}

// DetailPage holds the data for a single business.
type DetailPage struct {
	Page
	Name        string
	Initial     string
	LogoURL     string
	Description template.HTML
	Fields      []InfoBlock
	Error       string
}
