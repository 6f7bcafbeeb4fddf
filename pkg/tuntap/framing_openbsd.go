package tuntap

// tun(4) on OpenBSD prefixes every packet with its address family.
const tunAddressFamilyHeader = true
