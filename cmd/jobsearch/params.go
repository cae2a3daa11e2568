package main

import "jobsearch/internal/search"

// searchParams builds params from the chat-style query; explicit flags win.
func searchParams(query, page, limit, sort string) search.Params {
	p := search.ParamsFromText(query)
	if page != "" {
		p.Page = page
	}
	if limit != "" {
		p.Limit = limit
	}
	if sort != "" {
		p.Sort = sort
	}
	return p
}
