package generator

// artists is the pool version authors are drawn from.
var artists = []string{
	"James Anderson", "Maria Rossi", "Wei Zhang", "Liam O’Connor",
	"Emma Johnson", "Hiroshi Tanaka", "Sofia Martinez", "Lucas Schneider",
	"Olivia Brown", "Noah Wilson", "Yuki Sato", "Benjamin Clark",
	"Charlotte Martin", "Daniel Lee", "Isabella Garcia", "Ethan Miller",
	"Mia Davis", "Alexander Petrov", "Ava Thompson", "Jacob White", "Chen Wang",
	"Samuel Taylor", "Emily Moore", "Matteo Bianchi", "Chloe Anderson",
	"David Kim", "Anna Kowalski", "Michael Smith", "Haruto Suzuki",
	"Grace Hall", "Sebastian Müller", "Lily Evans", "William Harris",
	"Arjun Patel", "Natalie Walker", "Jack Robinson", "Victoria Young",
	"Oliver King", "Elena Popescu", "Lucas Wright", "Amelia Scott",
	"Henry Green", "Sofia Dimitrova", "Ryan Baker", "Zoe Adams",
	"Maxime Dubois", "Hannah Nelson", "Gabriel Silva", "Ella Carter",
	"Thomas Novak", "Aiko Yamamoto", "Christopher Mitchell", "Sarah Perez",
	"Jonathan Turner", "Laura Fischer", "Dylan Murphy", "Isabella Costa",
	"Kevin Campbell", "Mei Lin", "Nathan Stewart", "Julia Weber",
	"Brandon Phillips", "Alina Ivanova", "Jason Parker", "Sophie Laurent",
	"Daniel Nguyen", "Madison Edwards", "Adrian Popov", "Rachel Collins",
	"Aaron Morris", "Lena Hoffmann", "Justin Rogers", "Niamh Kelly",
	"Eric Reed", "Katarina Horvat", "Adam Cooper", "Claire Bennett",
	"Felix Wagner", "Brooke Simmons", "Marcus Johansson", "Vanessa Cruz",
	"Owen Price", "Priya Sharma", "Cody Richardson", "Ingrid Svensson",
	"Tyler Gray", "Yuna Choi", "Victor Hernandez", "Paige Foster",
	"Kenji Nakamura", "Scott Bailey", "Anya Smirnova", "Logan Rivera",
	"Lucy Barnes", "Andrej Kovac", "Kayla Howard", "Marco Romano",
	"Leah Brooks", "Samuel Ortiz", "Taro Watanabe",
}
