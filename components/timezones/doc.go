// Package timezones builds a curated, offset-sorted catalog of timezone
// records and narrows it from free-text input, for select widgets.
//
// Catalog construction resolves each curated identifier against a civil-time
// service (current UTC offset and daylight saving state) and an informal-name
// table (abbreviations such as "CST"). The resulting records are labelled
// "(GMT-6:00) Central Time (CST)" and ordered by offset.
//
// Filtering matches the search text against every textual field of a record
// and against the timezones of cities whose name, province or country matches
// the text, so "india" finds Asia/Kolkata through Mumbai.
//
// The package also ships a net/http handler returning JSON options, route
// helpers and a session-scoped Selector implementing the widget contract.
package timezones
