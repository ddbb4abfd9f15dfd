package kafka

var ConsumeFrom = consume
