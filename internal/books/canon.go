package books

// canon lists every book of the corpus in traditional order, with the
// uppercase file codes used by the asset archive and the common printed
// abbreviations. Alias matching is normalized, so "1 Ne." and "1-nephi"
// both resolve without separate entries.
var canon = []struct {
	name    string
	aliases []string
}{
	// Old Testament
	{"Genesis", []string{"GEN", "Gen"}},
	{"Exodus", []string{"EXO", "Ex"}},
	{"Leviticus", []string{"LEV", "Lev"}},
	{"Numbers", []string{"NUM", "Num"}},
	{"Deuteronomy", []string{"DEU", "Deut"}},
	{"Joshua", []string{"JOS", "Josh"}},
	{"Judges", []string{"JDG", "Judg"}},
	{"Ruth", []string{"RTH"}},
	{"1 Samuel", []string{"SA1", "1 Sam"}},
	{"2 Samuel", []string{"SA2", "2 Sam"}},
	{"1 Kings", []string{"KG1", "1 Kgs"}},
	{"2 Kings", []string{"KG2", "2 Kgs"}},
	{"1 Chronicles", []string{"CH1", "1 Chr"}},
	{"2 Chronicles", []string{"CH2", "2 Chr"}},
	{"Ezra", []string{"EZR"}},
	{"Nehemiah", []string{"NEH", "Neh"}},
	{"Esther", []string{"EST", "Esth"}},
	{"Job", []string{"JOB"}},
	{"Psalms", []string{"PSA", "Ps", "Psalm"}},
	{"Proverbs", []string{"PRO", "Prov"}},
	{"Ecclesiastes", []string{"ECC", "Eccl"}},
	{"Song of Solomon", []string{"SOS", "Song"}},
	{"Isaiah", []string{"ISA", "Isa"}},
	{"Jeremiah", []string{"JER", "Jer"}},
	{"Lamentations", []string{"LAM", "Lam"}},
	{"Ezekiel", []string{"EZK", "Ezek"}},
	{"Daniel", []string{"DAN", "Dan"}},
	{"Hosea", []string{"HSA", "Hos"}},
	{"Joel", []string{"JOL"}},
	{"Amos", []string{"AMS"}},
	{"Obadiah", []string{"OBD", "Obad"}},
	{"Jonah", []string{"JON"}},
	{"Micah", []string{"MIC", "Mic"}},
	{"Nahum", []string{"NAH", "Nah"}},
	{"Habakkuk", []string{"HAB", "Hab"}},
	{"Zephaniah", []string{"ZEP", "Zeph"}},
	{"Haggai", []string{"HAG", "Hag"}},
	{"Zechariah", []string{"ZEC", "Zech"}},
	{"Malachi", []string{"MAL", "Mal"}},

	// New Testament
	{"Matthew", []string{"MAT", "Matt"}},
	{"Mark", []string{"MRK"}},
	{"Luke", []string{"LUK"}},
	{"John", []string{"JHN"}},
	{"Acts", []string{"ACT"}},
	{"Romans", []string{"ROM", "Rom"}},
	{"1 Corinthians", []string{"CO1", "1 Cor"}},
	{"2 Corinthians", []string{"CO2", "2 Cor"}},
	{"Galatians", []string{"GAL", "Gal"}},
	{"Ephesians", []string{"EPH", "Eph"}},
	{"Philippians", []string{"PHP", "Philip"}},
	{"Colossians", []string{"COL", "Col"}},
	{"1 Thessalonians", []string{"TH1", "1 Thes"}},
	{"2 Thessalonians", []string{"TH2", "2 Thes"}},
	{"1 Timothy", []string{"TI1", "1 Tim"}},
	{"2 Timothy", []string{"TI2", "2 Tim"}},
	{"Titus", []string{"TIT"}},
	{"Philemon", []string{"PHM", "Philem"}},
	{"Hebrews", []string{"HEB", "Heb"}},
	{"James", []string{"JAS"}},
	{"1 Peter", []string{"PE1", "1 Pet"}},
	{"2 Peter", []string{"PE2", "2 Pet"}},
	{"1 John", []string{"JO1", "1 Jn"}},
	{"2 John", []string{"JO2", "2 Jn"}},
	{"3 John", []string{"JO3", "3 Jn"}},
	{"Jude", []string{"JDE"}},
	{"Revelation", []string{"REV", "Rev"}},

	// Book of Mormon
	{"1 Nephi", []string{"NE1", "1 Ne"}},
	{"2 Nephi", []string{"NE2", "2 Ne"}},
	{"Jacob", []string{"JAC"}},
	{"Enos", []string{"ENO"}},
	{"Jarom", []string{"JRM"}},
	{"Omni", []string{"OMN"}},
	{"Words of Mormon", []string{"WOM", "W of M"}},
	{"Mosiah", []string{"MSH"}},
	{"Alma", []string{"ALM"}},
	{"Helaman", []string{"HEL", "Hel"}},
	{"3 Nephi", []string{"NE3", "3 Ne"}},
	{"4 Nephi", []string{"NE4", "4 Ne"}},
	{"Mormon", []string{"MRM", "Morm"}},
	{"Ether", []string{"ETH"}},
	{"Moroni", []string{"MNI", "Moro"}},

	// Doctrine and Covenants
	{"Doctrine and Covenants", []string{"D&C", "DC"}},

	// Pearl of Great Price
	{"Moses", []string{"MSS"}},
	{"Abraham", []string{"ABR", "Abr"}},
	{"Joseph Smith-Matthew", []string{"JSM", "JS-M"}},
	{"Joseph Smith-History", []string{"JSH", "JS-H"}},
	{"Articles of Faith", []string{"AOF", "A of F"}},
}
