package training

// LabeledPair is one training example. Label 1 marks a variant pair.
type LabeledPair struct {
	Word1 string
	Word2 string
	Label int
}

// DefaultCorpus is the labelled set the shipped model was fit on.
var DefaultCorpus = []LabeledPair{
	{"Tim", "Tim's", 1},
	{"Apple", "Apple's", 1},
	{"Gordon", "Gordon's", 1},
	{"Bestbuy", "Bestbuy's", 1},
	{"Lobster", "Lobsters", 1},
	{"Tim", "Gordon", 0},
	{"Apple", "Lobster", 0},
	{"Bestbuy", "Tim", 0},
	{"Gordon", "Apple", 0},
	{"Lobster", "Bestbuy", 0},
	{"Apple", "The Apple Bank", 0},
	{"Balcony Technology", "Pipe Technologies", 0},
}
