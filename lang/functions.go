package lang

// Functions are the JSONata built-in functions.
//
// Source: https://docs.jsonata.org (function library reference).
var Functions = []Function{
	// String functions.
	{"$string", "$string(arg [, prettify])", "Casts the argument to a string", "string"},
	{"$length", "$length(str)", "Number of characters in the string", "string"},
	{"$substring", "$substring(str, start [, length])", "Substring starting at start", "string"},
	{"$substringBefore", "$substringBefore(str, chars)", "Substring before the first occurrence of chars", "string"},
	{"$substringAfter", "$substringAfter(str, chars)", "Substring after the first occurrence of chars", "string"},
	{"$uppercase", "$uppercase(str)", "String in upper case", "string"},
	{"$lowercase", "$lowercase(str)", "String in lower case", "string"},
	{"$trim", "$trim(str)", "String with whitespace normalized", "string"},
	{"$pad", "$pad(str, width [, char])", "String padded to a minimum width", "string"},
	{"$contains", "$contains(str, pattern)", "True if str matches the pattern", "string"},
	{"$split", "$split(str, separator [, limit])", "Array of substrings", "string"},
	{"$join", "$join(array [, separator])", "Array of strings joined into one", "string"},
	{"$match", "$match(str, pattern [, limit])", "Array of regex match structures", "string"},
	{"$replace", "$replace(str, pattern, replacement [, limit])", "String with pattern replaced", "string"},
	{"$eval", "$eval(expr [, context])", "Evaluates the expression string", "string"},
	{"$base64encode", "$base64encode(str)", "Base-64 encoding of the string", "string"},
	{"$base64decode", "$base64decode(str)", "Base-64 decoding of the string", "string"},
	{"$encodeUrlComponent", "$encodeUrlComponent(str)", "URL-component-encoded string", "string"},
	{"$encodeUrl", "$encodeUrl(str)", "URL-encoded string", "string"},
	{"$decodeUrlComponent", "$decodeUrlComponent(str)", "URL-component-decoded string", "string"},
	{"$decodeUrl", "$decodeUrl(str)", "URL-decoded string", "string"},

	// Numeric functions.
	{"$number", "$number(arg)", "Casts the argument to a number", "numeric"},
	{"$abs", "$abs(number)", "Absolute value", "numeric"},
	{"$floor", "$floor(number)", "Greatest integer less than or equal", "numeric"},
	{"$ceil", "$ceil(number)", "Least integer greater than or equal", "numeric"},
	{"$round", "$round(number [, precision])", "Rounded to the given precision", "numeric"},
	{"$power", "$power(base, exponent)", "Base raised to the exponent", "numeric"},
	{"$sqrt", "$sqrt(number)", "Square root", "numeric"},
	{"$random", "$random()", "Pseudo-random number in [0, 1)", "numeric"},
	{"$formatNumber", "$formatNumber(number, picture [, options])", "Number formatted per an XPath picture", "numeric"},
	{"$formatBase", "$formatBase(number [, radix])", "Number as a string in the given radix", "numeric"},
	{"$formatInteger", "$formatInteger(number, picture)", "Integer formatted per an XPath picture", "numeric"},
	{"$parseInteger", "$parseInteger(string, picture)", "Parses an integer per an XPath picture", "numeric"},

	// Aggregation functions.
	{"$sum", "$sum(array)", "Sum of an array of numbers", "aggregation"},
	{"$max", "$max(array)", "Maximum of an array of numbers", "aggregation"},
	{"$min", "$min(array)", "Minimum of an array of numbers", "aggregation"},
	{"$average", "$average(array)", "Mean of an array of numbers", "aggregation"},

	// Boolean functions.
	{"$boolean", "$boolean(arg)", "Casts the argument to a boolean", "boolean"},
	{"$not", "$not(arg)", "Boolean negation", "boolean"},
	{"$exists", "$exists(arg)", "True if the argument is defined", "boolean"},

	// Array functions.
	{"$count", "$count(array)", "Number of items in the array", "array"},
	{"$append", "$append(array1, array2)", "Arrays appended into one", "array"},
	{"$sort", "$sort(array [, function])", "Array sorted, optionally by a comparator", "array"},
	{"$reverse", "$reverse(array)", "Array in reverse order", "array"},
	{"$shuffle", "$shuffle(array)", "Array in random order", "array"},
	{"$distinct", "$distinct(array)", "Array with duplicates removed", "array"},
	{"$zip", "$zip(array1 [, ...])", "Convolved (zipped) arrays", "array"},

	// Object functions.
	{"$keys", "$keys(object)", "Array of the object's keys", "object"},
	{"$values", "$values(object)", "Array of the object's values", "object"},
	{"$lookup", "$lookup(object, key)", "Value for the given key", "object"},
	{"$spread", "$spread(object)", "Array of single-key objects", "object"},
	{"$merge", "$merge(array<object>)", "Objects merged into one", "object"},
	{"$each", "$each(object, function)", "Array from applying the function to each pair", "object"},
	{"$type", "$type(value)", "Type of the value as a string", "object"},
	{"$error", "$error(message)", "Raises an error with the message", "object"},
	{"$assert", "$assert(condition, message)", "Raises an error if the condition is false", "object"},

	// Date/time functions.
	{"$now", "$now([picture [, timezone]])", "Current timestamp as an ISO 8601 string", "date"},
	{"$millis", "$millis()", "Current timestamp in milliseconds since the epoch", "date"},
	{"$fromMillis", "$fromMillis(number [, picture [, timezone]])", "Millisecond timestamp formatted as a string", "date"},
	{"$toMillis", "$toMillis(timestamp [, picture])", "Timestamp string parsed to milliseconds", "date"},

	// Higher-order functions.
	{"$map", "$map(array, function)", "Array from applying the function to each item", "higher-order"},
	{"$filter", "$filter(array, function)", "Items for which the function returns true", "higher-order"},
	{"$single", "$single(array, function)", "The one item matching the predicate", "higher-order"},
	{"$reduce", "$reduce(array, function [, init])", "Array folded with the function", "higher-order"},
	{"$sift", "$sift(object, function)", "Object entries for which the function returns true", "higher-order"},
}
