package compiler

// librarySource is prepended to every program before stage A. It defines
// add, sub, mul, div, mod, neg, lt, leq, gt, geq, eq, neq, eor, memset, and
// memget as ordinary functions over the small set of true MTTM primitives
// (isZero, isPos, isNeg, basic_add, basic_sub, basic_xor, basic_neg,
// basic_eq, basic_lt, the MEM-bit primitives), the same split the compiler
// this project is modeled on uses between its Turing-Machine-level
// primitives and its prepended library: see TMCompiler/compilation/lib.cpp.
const librarySource = `
int add(int x, int y) {
	if (isZero(x)) {
		return y;
	}
	if (isZero(y)) {
		return x;
	}

	bool xPos = isPos(x);
	bool yPos = isPos(y);

	if (xPos) {
		if (yPos) {
			return basic_add(x, y);
		}
		int negY = basic_neg(y);
		if (negY == x) {
			return 0;
		}
		if (negY < x) {
			return basic_sub(x, negY);
		}
		return basic_neg(basic_sub(negY, x));
	}

	if (yPos) {
		int negX = basic_neg(x);
		if (negX == y) {
			return 0;
		}
		if (negX < y) {
			return basic_sub(y, negX);
		}
		return basic_neg(basic_sub(negX, y));
	}

	return basic_neg(basic_add(basic_neg(x), basic_neg(y)));
}

int sub(int x, int y) {
	if (isZero(x)) {
		return -y;
	}
	if (isZero(y)) {
		return x;
	}

	if (isNeg(x) && isNeg(y)) {
		return add(x, -y);
	}
	if (isNeg(x) && isPos(y)) {
		return -basic_add(-x, y);
	}
	if (isPos(x) && isNeg(y)) {
		return basic_add(x, -y);
	}
	return add(x, -y);
}

int mul(int x, int y) {
	if (isZero(x) || isZero(y)) {
		return 0;
	}

	bool ansNeg = false;
	if (isNeg(x)) {
		x = -x;
		ansNeg = true;
	}
	if (isNeg(y)) {
		y = -y;
		ansNeg = !ansNeg;
	}

	// binary-search-style repeated doubling: peel the highest remaining
	// power of two off y at each step.
	int ans = 0;
	int y0 = y;
	while (y0 > 0) {
		int y1 = 1;
		int y2 = 2;
		int val1 = x;
		int val2 = x + x;
		while (y2 <= y0) {
			y1 = y2;
			val1 = val2;
			y2 += y2;
			val2 += val2;
		}
		ans += val1;
		y0 -= y1;
	}

	if (ansNeg) {
		ans = -ans;
	}
	return ans;
}

int div(int x, int y) {
	if (isZero(x)) {
		return 0;
	}
	if (x < 0 && y < 0) {
		return div(-x, -y);
	}
	if (x < 0) {
		return -div(-x, y);
	}
	if (y < 0) {
		return -div(x, -y);
	}

	int ans = 0;
	int n = x;
	while (n >= y) {
		int prevJump = 0;
		int jump = 1;
		while (y * (ans + jump) <= x) {
			prevJump = jump;
			jump += jump;
		}
		ans += prevJump;
		n = x - (y * ans);
	}
	return ans;
}

int mod(int x, int y) {
	int d = div(x, y);
	return x - y * d;
}

int neg(int x) {
	if (isZero(x)) {
		return 0;
	}
	return basic_neg(x);
}

bool lt(int x, int y) {
	if (isNeg(x)) {
		if (isNeg(y)) {
			return lt(-y, -x);
		}
		return true;
	}
	if (isZero(x)) {
		if (isNeg(y)) {
			return false;
		}
		if (isZero(y)) {
			return false;
		}
		return true;
	}
	if (isNeg(y) || isZero(y)) {
		return false;
	}
	return basic_lt(x, y);
}

bool leq(int x, int y) {
	return (x == y) || (x < y);
}

bool gt(int x, int y) {
	return !(x <= y);
}

bool geq(int x, int y) {
	return !(x < y);
}

bool eq(int x, int y) {
	if (isZero(x)) {
		return isZero(y);
	}
	if (isNeg(x)) {
		if (isNeg(y)) {
			return basic_eq(-x, -y);
		}
		return false;
	}
	if (isPos(y)) {
		return basic_eq(x, y);
	}
	return false;
}

bool neq(int x, int y) {
	return !(x == y);
}

int eor(int x, int y) {
	if (isZero(x)) {
		return y;
	}
	if (isZero(y)) {
		return x;
	}
	return basic_xor(x, y);
}

// memset and memget lay the MEM array out bit by bit on the mem-bits tape
// via the diagonal pairing (x, y) -> (x+y)(x+y+1)/2 + x, the y'th bit of
// MEM[x] living at that cell; a leading sign bit precedes the magnitude
// bits, least significant first.
void memset(int index, int val) {
	int currBitIndex = getMemBitIndex();

	bool handledSign = false;
	int valIndex = 0;
	int v = val;

	while (!isZero(v) || !handledSign) {
		int desiredBitIndex = ((index + valIndex) * (index + valIndex + 1)) / 2 + index;
		while (currBitIndex > desiredBitIndex) {
			currBitIndex -= 1;
			moveMemHeadLeft();
		}
		while (currBitIndex < desiredBitIndex) {
			currBitIndex += 1;
			moveMemHeadRight();
		}

		if (!handledSign) {
			if (isNeg(v)) {
				setMemBitOne();
				v = -v;
			} else {
				setMemBitZero();
			}
			handledSign = true;
		} else {
			int v2 = v / 2;
			int bit = v - (2 * v2);
			if (bit == 1) {
				setMemBitOne();
			} else {
				setMemBitZero();
			}
			v = v2;
		}

		valIndex += 1;
	}

	int finalBitIndex = ((index + valIndex) * (index + valIndex + 1)) / 2 + index;
	while (currBitIndex < finalBitIndex) {
		currBitIndex += 1;
		moveMemHeadRight();
	}
	setMemBitBlank();

	setMemBitIndex(currBitIndex);
}

int memget(int index) {
	int ans = 0;
	int currBitIndex = getMemBitIndex();
	int desiredBitIndex = (index * (index + 1)) / 2 + index;

	while (currBitIndex > desiredBitIndex) {
		currBitIndex -= 1;
		moveMemHeadLeft();
	}
	while (currBitIndex < desiredBitIndex) {
		currBitIndex += 1;
		moveMemHeadRight();
	}

	int valIndex = 0;
	bool shouldBeNegative = false;
	int pow2 = 0;
	while (!memBitIsBlank()) {
		if (isZero(valIndex)) {
			if (memBitIsOne()) {
				shouldBeNegative = true;
			}
		} else {
			if (memBitIsOne()) {
				ans += pow2;
			}
		}

		valIndex += 1;
		if (isZero(pow2)) {
			pow2 = 1;
		} else {
			pow2 += pow2;
		}

		desiredBitIndex = ((index + valIndex) * (index + valIndex + 1)) / 2 + index;
		while (currBitIndex < desiredBitIndex) {
			currBitIndex += 1;
			moveMemHeadRight();
		}
	}

	if (shouldBeNegative) {
		ans = -ans;
	}

	setMemBitIndex(currBitIndex);
	return ans;
}
`
