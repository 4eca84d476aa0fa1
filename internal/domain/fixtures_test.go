package domain

// Canned SWASHES outputs used across the domain tests. Values come from the
// tool's documented examples: a MacDonald long channel (1D, type 2, domain 1,
// choice 2, 5 cells) and a Thacker planar surface (2D, type 1, domain 1,
// choice 1, 3x3 cells).

const rawMacDonald1D = `#############################################################################
# Generated by SWASHES version 1.03.00, 2016-01-29
#############################################################################
# Dimension: 1
# Type: 2
# Domain: 1
# Choice: 2
#############################################################################
# Parameters of the solution
# Length of the domain: 1000 meters
# Space step: 200 meters
# Number of cells: 5
#############################################################################
#
#(i-0.5)*dx	h[i]	u[i]	topo[i]	q[i]	topo[i]+h[i]	Fr[i]=Froude	topo[i]+hc[i]
100	0.770195	2.59675	5.88374	2	6.65393	0.944702	6.62527
300	0.937035	2.13439	4.67542	2	5.61245	0.703982	5.41695
500	1.1123	1.79808	4.06441	2	5.17671	0.544331	4.80595
700	0.937035	2.13439	3.10854	2	4.04558	0.703982	3.85008
900	0.770195	2.59675	1.03618	2	1.80638	0.944702	1.77771
`

const rawThacker2D = `#############################################################################
# Generated by SWASHES version 1.03.00, 2016-01-29
#############################################################################
# Dimension: 2
# Type: 1
# Domain: 1
# Choice: 1
#############################################################################
# Parameters of the solution
# Length of the domain: 4 meters
# Width of the domain: 4 meters
# Space step in x: 1.33333 meters
# Space step in y: 1.33333 meters
# Number of cells in x: 3
# Number of cells in y: 3
#############################################################################
#
#(i-0.5)*dx	(j-0.5)*dy	h[i][j]	u[i][j]	v[i][j]	topo[i][j]+h[i][j]	topo[i][j]	||U||[i][j]	Fr[i][j]	qx[i][j]	qy[i][j]	q[i][j]
0.666667	0.666667	0	0	0	0.255556	0.255556	0	NaN	0	0	0
0.666667	2	0	0	0	0.077778	0.077778	0	NaN	0	0	0
0.666667	3.33333	0	0	0	0.255556	0.255556	0	NaN	0	0	0
2	0.666667	0	0	0	0.077778	0.077778	0	NaN	0	0	0
2	2	0.125	0	0	0.025	-0.1	0	0	0	0	0
2	3.33333	0	0	0	0.077778	0.077778	0	NaN	0	0	0
3.33333	0.666667	0	0	0	0.255556	0.255556	0	NaN	0	0	0
3.33333	2	0	0	0	0.077778	0.077778	0	NaN	0	0	0
3.33333	3.33333	0	0	0	0.255556	0.255556	0	NaN	0	0	0
`

func macDonaldCase() Case {
	return Case{Dimension: OneDimensional, Type: 2, Domain: 1, Choice: 2, CellsX: 5}
}

func thackerCase() Case {
	return Case{Dimension: TwoDimensional, Type: 1, Domain: 1, Choice: 1, CellsX: 3, CellsY: 3}
}
