package reviews

// Content fragments for the sample pool. Openers and details are combined
// by the seeded generator, so the pool reads varied without any network
// content source.

var firstNames = []string{
	"Aisha", "Alex", "Amara", "Andre", "Bella", "Cameron", "Carlos", "Chloe",
	"Daniel", "Dara", "Dev", "Elena", "Emeka", "Farah", "Gabriel", "Grace",
	"Hana", "Ibrahim", "Imani", "Jade", "Jamal", "Jordan", "Kai", "Keisha",
	"Leila", "Liam", "Lina", "Marcus", "Maya", "Mei", "Nadia", "Nico",
	"Noah", "Olivia", "Omar", "Priya", "Quinn", "Rafael", "Riley", "Rosa",
	"Sana", "Sasha", "Sean", "Sofia", "Tariq", "Tessa", "Theo", "Yara",
	"Yusuf", "Zoe",
}

var lastInitials = []string{
	"A", "B", "C", "D", "E", "F", "G", "H", "J", "K", "L", "M",
	"N", "O", "P", "R", "S", "T", "V", "W",
}

var positiveOpeners = []string{
	"Absolutely love this piece.",
	"Exceeded my expectations.",
	"The quality is unreal for the price.",
	"Fits exactly as described.",
	"This is my third order and it never disappoints.",
	"Got so many compliments wearing this.",
	"The fabric feels premium.",
	"Perfect fit straight out of the bag.",
	"Better in person than in the photos.",
	"Instantly became my favorite item.",
	"Really impressed with the stitching and finish.",
	"The color is exactly like the pictures.",
	"Comfortable enough to wear all day.",
	"Sizing chart was spot on.",
	"Washed it twice already and it still looks new.",
	"Great drape and weight to the fabric.",
}

var positiveDetails = []string{
	"Will definitely be ordering again.",
	"Shipping was quick too.",
	"Worth every penny.",
	"Highly recommend sizing true to fit.",
	"Packaging was really nice as well.",
	"Already eyeing the other colors.",
	"My new go-to for weekends.",
	"Customer service answered my question within hours.",
	"Can't wait for the next drop.",
	"Ordered one for my partner as well.",
	"It layers really well with everything.",
	"Five stars from me.",
	"You can tell real care went into the details.",
	"Honestly buy it before it sells out.",
}

var lateOpeners = []string{
	"The product itself is nice, but delivery took way too long.",
	"Took almost three weeks to arrive.",
	"Quality is fine, shipping was the letdown.",
	"Arrived much later than the estimate.",
	"Good piece, frustrating wait.",
	"Delivery updates were confusing and slow.",
}

var lateDetails = []string{
	"Would have been five stars with faster shipping.",
	"Hope fulfillment improves, because the clothes are great.",
	"Tracking barely updated the whole time.",
	"By the time it arrived the occasion had passed.",
	"Three stars mostly for the delay.",
	"Support was polite but couldn't speed things up.",
}
