/*
Package listing runs list and point-lookup requests against an aggregation engine.

A Service combines the filter compiler with tenant scoping, sorting, counting and
paging. It has four entry points:

	FetchList          one page of a single collection
	FetchUnifiedList   one page over several collections joined with $unionWith
	FetchItemByID      first document matching an identifier in any representation
	FetchItemByField   first document where a field equals a value

Typical use from an HTTP handler:

	req := svc.ParseRequest(r.URL.Query())

	result, err := svc.FetchList(ctx, "orders", nil, nil, listing.Options{
		Request:     req,
		TenantValue: storeID,
	})
	if err != nil {
		return err
	}
	page := result.Pagination(req.Limit)

Every list call counts first and then fetches the page, so two engine round
trips are made. Each filter carrying a percent-of-result adds one more count.
CountOnly requests stop after the count.

Filters that do not parse or whose type and operator do not go together are
dropped without error. Engine errors are returned unmodified.

Unified listings tag every document with its source name:

	result, err := svc.FetchUnifiedList(ctx, []listing.Source{
		{Name: "order", Collection: "orders"},
		{Name: "refund", Collection: "refunds"},
	}, opts)
	// result.Items[i]["source"] is "order" or "refund"
*/
package listing
