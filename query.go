package roster

type Order string

const (
	Ascend  Order = "ASC"
	Descend Order = "DESC"
)

// IDRange bounds a find by record id, inclusive on both ends.
type IDRange struct {
	From, To int
}

type queryOptions struct {
	order   Order
	idRange *IDRange
	limit   int
}

func (qo *queryOptions) Order(o Order) *queryOptions {
	qo.order = o
	return qo
}

func (qo *queryOptions) IDRange(from, to int) *queryOptions {
	qo.idRange = &IDRange{From: from, To: to}
	return qo
}

func (qo *queryOptions) Limit(n int) *queryOptions {
	qo.limit = n
	return qo
}

func Q() *queryOptions {
	return &queryOptions{order: Ascend}
}
