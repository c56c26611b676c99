package utils

func SetBit(n *byte, pos uint) {
	*n |= 1 << pos
}

func HasBit(n byte, pos uint) bool {
	return n&(1<<pos) != 0
}
